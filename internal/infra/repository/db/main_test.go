package db

import (
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDao(t require.TestingT) *DbDao {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	dao := NewDbDao(conn)
	require.NoError(t, dao.InitMigrate())
	return dao
}

func closeTestDao(dao *DbDao) {
	if sqlDB, err := dao.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
