package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что CartRepository удовлетворяет интерфейсу CartRepository.
var _ ports.CartRepository = (*CartRepository)(nil)

// CartRepository — реализация хранилища корзин на Postgres (pgxpool).
// Корзина пишется целиком (delete + COPY) в одной транзакции — это и даёт
// last-write-wins на уровне корзины пользователя.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository — конструктор CartRepository.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository { return &CartRepository{pool: pool} }

// LoadCart — позиции корзины пользователя в порядке добавления.
// Пустая корзина — пустой срез, не ошибка.
func (r *CartRepository) LoadCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT product_id, size, quantity
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY position
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ProductID, &line.Size, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cart rows: %w", err)
	}

	return lines, nil
}

// SaveCart — транзакционно заменяет корзину пользователя новым набором позиций.
func (r *CartRepository) SaveCart(ctx context.Context, userID string, lines []domain.CartLine) error {
	if userID == "" {
		return errors.New("user_id is required")
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	// replace: удаляем и вставляем список заново.
	if _, err = transaction.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete cart lines: %w", err)
	}
	if len(lines) > 0 {
		if err = copyLines(ctx, transaction, userID, lines); err != nil {
			return err
		}
	}

	// Завершаем транзакцию
	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// copyLines — вставка позиций через COPY (CopyFromRows); быстрее, чем INSERT в цикле.
func copyLines(ctx context.Context, tx pgx.Tx, userID string, lines []domain.CartLine) error {
	rows := make([][]any, 0, len(lines))
	for i, line := range lines {
		rows = append(rows, []any{userID, line.ProductID, line.Size, line.Quantity, i})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"cart_lines"},
		[]string{"user_id", "product_id", "size", "quantity", "position"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy cart lines: %w", err)
	}
	return nil
}
