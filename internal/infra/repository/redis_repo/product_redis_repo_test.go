package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/fulfillment/internal/pkg/app_err"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type ProductRepoTestSuite struct {
	suite.Suite
	mr          *miniredis.Miniredis
	rdb         *redis.Client
	productRepo *ProductRedisRepo
}

func (suite *ProductRepoTestSuite) SetupTest() {
	suite.mr, suite.rdb = setupTestRedis()
	suite.productRepo = NewProductRedisRepo(suite.rdb)
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	suite.rdb.Close()
	suite.mr.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func (suite *ProductRepoTestSuite) TestBasicProductStockOperations() {
	ctx := context.Background()

	// 創建商品庫存
	created, err := suite.productRepo.InitProductStock(ctx, "test1", 100)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), created)

	// 已存在不覆蓋
	created, err = suite.productRepo.InitProductStock(ctx, "test1", 5)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), created)

	stock, err := suite.productRepo.GetProductStock(ctx, "test1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 100, stock)

	// 扣減庫存
	require.NoError(suite.T(), suite.productRepo.TryReserveStock(ctx, "r1", "test1", 30))
	stock, _ = suite.productRepo.GetProductStock(ctx, "test1")
	assert.Equal(suite.T(), 70, stock)

	// 歸還
	require.NoError(suite.T(), suite.productRepo.ReleaseStock(ctx, "test1", 30))
	stock, _ = suite.productRepo.GetProductStock(ctx, "test1")
	assert.Equal(suite.T(), 100, stock)
}

// 逾時後重送同一預留, 只扣一次
func (suite *ProductRepoTestSuite) TestReserveIsIdempotentPerReservation() {
	ctx := context.Background()
	_, err := suite.productRepo.InitProductStock(ctx, "test1", 10)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.productRepo.TryReserveStock(ctx, "r1", "test1", 4))
	require.NoError(suite.T(), suite.productRepo.TryReserveStock(ctx, "r1", "test1", 4))
	stock, _ := suite.productRepo.GetProductStock(ctx, "test1")
	assert.Equal(suite.T(), 6, stock)
	assert.True(suite.T(), suite.mr.Exists("reservation:r1"))
	assert.Greater(suite.T(), suite.mr.TTL("reservation:r1"), time.Duration(0))

	// 不同預留照常扣減
	require.NoError(suite.T(), suite.productRepo.TryReserveStock(ctx, "r2", "test1", 4))
	stock, _ = suite.productRepo.GetProductStock(ctx, "test1")
	assert.Equal(suite.T(), 2, stock)

	// 庫存不足不留下標記, 之後補貨可以用同一預留重試
	err = suite.productRepo.TryReserveStock(ctx, "r3", "test1", 4)
	assert.ErrorIs(suite.T(), err, app_err.ErrInsufficientStock)
	assert.False(suite.T(), suite.mr.Exists("reservation:r3"))
}

func (suite *ProductRepoTestSuite) TestReserveErrors() {
	ctx := context.Background()
	_, err := suite.productRepo.InitProductStock(ctx, "test1", 2)
	require.NoError(suite.T(), err)

	err = suite.productRepo.TryReserveStock(ctx, "r1", "test1", 3)
	assert.ErrorIs(suite.T(), err, app_err.ErrInsufficientStock)
	stock, _ := suite.productRepo.GetProductStock(ctx, "test1")
	assert.Equal(suite.T(), 2, stock)

	assert.ErrorIs(suite.T(), suite.productRepo.TryReserveStock(ctx, "r2", "missing", 1), app_err.ErrProductNotFound)
	assert.ErrorIs(suite.T(), suite.productRepo.ReleaseStock(ctx, "missing", 1), app_err.ErrProductNotFound)
	assert.ErrorIs(suite.T(), suite.productRepo.TryReserveStock(ctx, "r3", "test1", -1), app_err.ErrInvalidQuantity)

	_, err = suite.productRepo.GetProductStock(ctx, "missing")
	assert.ErrorIs(suite.T(), err, app_err.ErrProductNotFound)
}

func (suite *ProductRepoTestSuite) TestConcurrentStockOperations() {
	opCtx, opCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer opCancel()

	const (
		initialStock  = 100
		numGoroutines = 300
	)
	_, err := suite.productRepo.InitProductStock(opCtx, "test2", initialStock)
	require.NoError(suite.T(), err)

	g, ctx := errgroup.WithContext(opCtx)

	var successCount, insufficientCount atomic.Int32
	for i := 0; i < numGoroutines; i++ {
		g.Go(func() error {
			err := suite.productRepo.TryReserveStock(ctx, fmt.Sprintf("r-%d", i), "test2", 1)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, app_err.ErrInsufficientStock):
				insufficientCount.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(suite.T(), g.Wait())

	assert.Equal(suite.T(), int32(initialStock), successCount.Load())
	assert.Equal(suite.T(), int32(numGoroutines-initialStock), insufficientCount.Load())

	stock, err := suite.productRepo.GetProductStock(context.Background(), "test2")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, stock)
}
