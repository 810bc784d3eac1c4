package repository

import "errors"

var (
	ErrKifuNotFound    = errors.New("kifu record not found")
	ErrRecordNameTaken = errors.New("kifu record name already used")
	ErrMongodb         = errors.New("mongodb operation failed")
	ErrRedis           = errors.New("redis operation failed")
)
