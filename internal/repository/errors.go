package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate возвращается, когда вставка нарушила уникальный индекс.
// Два параллельных "добавить в избранное" разруливаются именно здесь:
// проигравший получает ErrDuplicate, а не generic-ошибку.
var ErrDuplicate = errors.New("duplicate row")

// IsUniqueViolation распознаёт нарушение уникальности у обоих драйверов
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// modernc sqlite не возвращает типизированную ошибку
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
