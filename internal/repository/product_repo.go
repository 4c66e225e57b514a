package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// ProductRepository 产品目录数据访问接口（只读参考数据）
type ProductRepository interface {
	GetByID(ctx context.Context, id int) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}

// productRepo ProductRepository 的 GORM 实现
type productRepo struct {
	db *gorm.DB
}

// NewProductRepo 创建 ProductRepository 实例
func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByID(ctx context.Context, id int) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("product_id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Order("product_id ASC").
		Find(&products).Error
	return products, err
}
