package dbtest

import (
	"github.com/RoyceAzure/lab/fulfillment/internal/infra/repository/db"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSqliteDao 測試用的記憶體資料庫, 每次呼叫都是全新的schema
// 只開一條連線, 交易彼此序列化, 與 postgres row lock 的效果相同
func NewSqliteDao() (*db.DbDao, error) {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	dao := db.NewDbDao(conn)
	if err := dao.InitMigrate(); err != nil {
		return nil, err
	}
	return dao, nil
}

func Close(dao *db.DbDao) {
	if dao == nil {
		return
	}
	if sqlDB, err := dao.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
