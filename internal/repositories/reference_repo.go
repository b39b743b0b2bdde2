package repositories

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

// referenceRepository 查询被引用聚合（分类/流派/演员）的存在性。
type referenceRepository struct {
	db    *pgxpool.Pool
	table string
	log   *log.Helper
}

func newReferenceRepository(db *pgxpool.Pool, logger log.Logger, table string) referenceRepository {
	return referenceRepository{db: db, table: table, log: log.NewHelper(logger)}
}

// ExistsByIDs 返回 ids 中在表内存在的子集；空输入不访问数据库。
func (r referenceRepository) ExistsByIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	query := fmt.Sprintf("select id from media.%s where id = any($1)", r.table)
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.WithContext(ctx).Errorf("query %s existence failed: err=%v", r.table, err)
		return nil, fmt.Errorf("exists %s: %w", r.table, err)
	}
	defer rows.Close()

	existing := make([]string, 0, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", r.table, err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s ids: %w", r.table, err)
	}
	return existing, nil
}

// CategoryRepository 查询分类存在性。
type CategoryRepository struct{ referenceRepository }

// NewCategoryRepository 构造 CategoryRepository。
func NewCategoryRepository(db *pgxpool.Pool, logger log.Logger) *CategoryRepository {
	return &CategoryRepository{newReferenceRepository(db, logger, "categories")}
}

// GenreRepository 查询流派存在性。
type GenreRepository struct{ referenceRepository }

// NewGenreRepository 构造 GenreRepository。
func NewGenreRepository(db *pgxpool.Pool, logger log.Logger) *GenreRepository {
	return &GenreRepository{newReferenceRepository(db, logger, "genres")}
}

// CastMemberRepository 查询演员存在性。
type CastMemberRepository struct{ referenceRepository }

// NewCastMemberRepository 构造 CastMemberRepository。
func NewCastMemberRepository(db *pgxpool.Pool, logger log.Logger) *CastMemberRepository {
	return &CastMemberRepository{newReferenceRepository(db, logger, "cast_members")}
}
