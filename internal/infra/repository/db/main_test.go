package db

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// 每個測試各自一個 in-memory sqlite, 互不干擾
func newTestDbDao(t *testing.T) *DbDao {
	t.Helper()
	conn, err := GetSqliteConn(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)

	dao := NewDbDao(conn)
	require.NoError(t, dao.InitMigrate())
	t.Cleanup(func() {
		dao.Close()
	})
	return dao
}
