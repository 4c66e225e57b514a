package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// RunMigrations 同步参考数据表结构
// 事件/班次仅存在于排程引擎内存中，不参与建表；
// 内存库每次启动都是白板，AutoMigrate 即全部所需
func RunMigrations(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(
		&model.Asset{},
		&model.Product{},
	); err != nil {
		return fmt.Errorf("同步表结构失败: %w", err)
	}

	logger.Info("数据库表结构同步完成")
	return nil
}
