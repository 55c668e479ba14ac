package db_test

import (
	"strings"
	"testing"

	"github.com/junowong/bloglist/internal/db"
)

func TestInitPostgres_InvalidDSN(t *testing.T) {
	_, err := db.InitPostgres("some=random")
	if err == nil {
		t.Fatal("InitPostgres did not return error for an invalid DSN")
	}
	if !strings.Contains(err.Error(), "ping postgres") {
		t.Errorf("error = %q; want substring %q", err.Error(), "ping postgres")
	}
}
