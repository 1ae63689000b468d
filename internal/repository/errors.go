package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrForeignKeyViolation 外键约束冲突：删除仍被投诉引用的部门 / 问题类型，
// 或投诉引用了不存在的部门 / 问题类型
var ErrForeignKeyViolation = errors.New("foreign key constraint violated")

// PostgreSQL foreign_key_violation
const pgForeignKeyViolation = "23503"

// translateError 把驱动层的外键错误统一为 ErrForeignKeyViolation，保留原始错误信息
func translateError(err error) error {
	if err == nil || !isForeignKeyViolation(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
