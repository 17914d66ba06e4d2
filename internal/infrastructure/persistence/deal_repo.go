package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"dealradar/internal/domain"
	"dealradar/internal/domain/entity"
	"dealradar/pkg/errcodes"
	"dealradar/pkg/lox"
)

type DealRepository struct {
	db *sqlx.DB
}

// NewDealRepository создаёт новый экземпляр репозитория.
func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *DealRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.StorageFailed, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.StorageFailed,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.StorageFailed, "failed to commit")
	}

	return nil
}

// CreateBatch сохраняет пачку сделок атомарно: либо вся выборка, либо ничего.
// Идентификатор и created_at назначает база.
func (r *DealRepository) CreateBatch(ctx context.Context, deals []entity.Deal, searchQuery, category string) error {
	if len(deals) == 0 {
		return nil
	}

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		for i, deal := range deals {
			if err := r.createTx(ctx, tx, deal, searchQuery, category); err != nil {
				return domain.WrapError(err, errcodes.StorageFailed,
					fmt.Sprintf("failed at index %d", i))
			}
		}
		return nil
	})
}

// List возвращает сохранённые сделки: текстовый фильтр матчится по title ИЛИ
// search_query без учёта регистра, порог — по discount_percent. Сортировка по
// скидке по убыванию, NULL-скидки в конце.
func (r *DealRepository) List(ctx context.Context, match string, minDiscount *int, limit int) ([]entity.StoredDeal, error) {
	query := `
		SELECT id, title, source, product_link, image_url, price,
		       original_price, discount_percent, currency, search_query, category, created_at
		FROM deals`

	var (
		conditions []string
		args       []any
	)

	if match != "" {
		args = append(args, "%"+match+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR search_query ILIKE $%d)", n, n))
	}

	if minDiscount != nil {
		args = append(args, *minDiscount)
		conditions = append(conditions, fmt.Sprintf("discount_percent >= $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit)
	query += fmt.Sprintf("\n\t\tORDER BY discount_percent DESC NULLS LAST\n\t\tLIMIT $%d", len(args))

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.StorageFailed, "failed to list deals")
	}

	return lox.Map(schemas, func(s dealSchema) entity.StoredDeal {
		return s.toDomain()
	}), nil
}

// createTx — внутренний метод вставки в рамках транзакции.
func (r *DealRepository) createTx(ctx context.Context, tx *sqlx.Tx, deal entity.Deal, searchQuery, category string) error {
	query := `
		INSERT INTO deals (title, source, product_link, image_url, price,
		                   original_price, discount_percent, currency, search_query, category)
		VALUES (:title, :source, :product_link, :image_url, :price,
		        :original_price, :discount_percent, :currency, :search_query, :category)`

	if _, err := tx.NamedExecContext(ctx, query, insertParams(deal, searchQuery, category)); err != nil {
		return domain.WrapError(err, errcodes.StorageFailed, "failed to insert deal")
	}

	return nil
}
