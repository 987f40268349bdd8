//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaljewellers/reserveops-backend/internal/adapter/repository/postgres"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

var (
	db      *postgres.DB
	baseURL string
)

// TestMain sets up the test environment: a running server and its database
func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	db, err = postgres.NewDB(getDBConnectionString())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		panic(fmt.Sprintf("Failed to migrate schema: %v", err))
	}

	baseURL = getHTTPAddress()

	code := m.Run()

	os.Exit(code)
}

func getDBConnectionString() string {
	connStr := os.Getenv("DB_CONN_STR")
	if connStr != "" {
		return connStr
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		user = "postgres"
	}

	password := os.Getenv("DB_PASSWORD")
	if password == "" {
		password = "postgres"
	}

	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		dbname = "reserveops"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

func getHTTPAddress() string {
	addr := os.Getenv("HTTP_ADDRESS")
	if addr == "" {
		addr = "http://localhost:8080"
	}
	return addr
}

func apiToken() string {
	token := os.Getenv("API_TOKEN")
	if token == "" {
		token = "dev-token"
	}
	return token
}

// setBucketBalance forces every document of a bucket to one balance so tests
// start from a known state, creating the document if the seeder has not run.
func setBucketBalance(t *testing.T, kind domain.ReserveKind, name string, balance decimal.Decimal) {
	t.Helper()
	ctx := context.Background()

	repo := postgres.NewReserveRepository(db)
	docs, err := repo.QueryBucket(ctx, kind, name)
	require.NoError(t, err)

	if len(docs) == 0 {
		_, err := db.ExecContext(ctx,
			`INSERT INTO reserve_documents (id, kind, type, balance) VALUES (gen_random_uuid(), $1, $2, $3)`,
			string(kind), name, balance.String())
		require.NoError(t, err)
		return
	}
	for _, doc := range docs {
		require.NoError(t, repo.UpdateBalance(ctx, doc.ID, balance))
	}
}

func clearUnseenNotifications(t *testing.T, reserveType string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`UPDATE admin_notifications SET seen = TRUE WHERE reserve_type = $1`, reserveType)
	require.NoError(t, err)
}

func doRequest(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, baseURL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", apiToken())
	req.Header.Set("X-Employee-Email", "tester@kamal.shop")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

// TestExchangeFlow exercises the full exchange path: sufficient stock is
// debited and recorded, insufficient stock blocks with an alert.
func TestExchangeFlow(t *testing.T) {
	setBucketBalance(t, domain.ReserveKindGold, domain.ReserveLocalGold, decimal.NewFromInt(50))
	clearUnseenNotifications(t, domain.ReserveLocalGold)

	// 10g at touch 92 less 2 consumes 9g fine
	resp, body := doRequest(t, http.MethodPost, "/v1/exchanges/confirm", map[string]string{
		"customerName": "Integration Walk-in",
		"metal":        "GOLD",
		"weight":       "10",
		"touch":        "92",
		"less":         "2",
		"source":       domain.ReserveLocalGold,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "RECORDED", body["state"])
	assert.Equal(t, "41", body["newBalance"])
	assert.NotEmpty(t, body["recordId"])

	// The bucket now reads 41g
	resp, body = doRequest(t, http.MethodGet, "/v1/reserves?kind=GOLD&name=LOCAL+GOLD", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "41", body["balance"])

	// A second exchange needing more than 41g is blocked without writes
	resp, body = doRequest(t, http.MethodPost, "/v1/exchanges/confirm", map[string]string{
		"customerName": "Integration Walk-in",
		"metal":        "GOLD",
		"weight":       "50",
		"touch":        "92",
		"less":         "2",
		"source":       domain.ReserveLocalGold,
	})

	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "BLOCKED", body["state"])
	assert.Equal(t, "41", body["available"])

	resp, body = doRequest(t, http.MethodGet, "/v1/reserves?kind=GOLD&name=LOCAL+GOLD", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "41", body["balance"])

	// The block raised exactly one unseen insufficiency alert
	var count int
	err := db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM admin_notifications WHERE reserve_type = $1 AND seen = FALSE`,
		domain.ReserveLocalGold).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestSaleFlow checks that a CASH sale credits LEDGER, logs the movement,
// debits the metal bucket, and fires a low-stock alert when warranted.
func TestSaleFlow(t *testing.T) {
	setBucketBalance(t, domain.ReserveKindGold, domain.ReserveBankGold, decimal.NewFromInt(12))
	setBucketBalance(t, domain.ReserveKindCash, domain.ReserveLedger, decimal.NewFromInt(1000))
	clearUnseenNotifications(t, domain.ReserveBankGold)

	resp, body := doRequest(t, http.MethodPost, "/v1/sales/confirm", map[string]string{
		"customerName": "Integration Walk-in",
		"metal":        "GOLD",
		"weight":       "5",
		"rate":         "6000",
		"mode":         "CASH",
		"source":       domain.ReserveBankGold,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "RECORDED", body["state"])
	assert.Equal(t, "7", body["newBalance"])

	// The cash side was credited with 30000
	resp, body = doRequest(t, http.MethodGet, "/v1/reserves?kind=CASH&name=LEDGER", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "31000", body["balance"])

	// The credit left an audit trail entry
	var reason, change string
	err := db.QueryRowContext(context.Background(),
		`SELECT reason, change FROM cash_movements WHERE type = $1 ORDER BY created_at DESC LIMIT 1`,
		domain.ReserveLedger).Scan(&reason, &change)
	require.NoError(t, err)
	assert.Equal(t, "sale", reason)
	assert.Equal(t, "30000", change)

	// 7g remaining is low: one unseen alert with the admin link
	resp, _ = doRequest(t, http.MethodGet, "/v1/notifications/unseen?reserveType="+domain.ReserveBankGold, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestNotificationAcknowledge drives an alert through seen
func TestNotificationAcknowledge(t *testing.T) {
	setBucketBalance(t, domain.ReserveKindSilver, domain.ReserveLocalSilver, decimal.NewFromInt(8))
	clearUnseenNotifications(t, domain.ReserveLocalSilver)

	// 2g from an 8g bucket leaves 6g, below the threshold
	resp, _ := doRequest(t, http.MethodPost, "/v1/exchanges/confirm", map[string]string{
		"customerName": "Integration Walk-in",
		"metal":        "SILVER",
		"weight":       "2",
		"touch":        "100",
		"less":         "0",
		"source":       domain.ReserveLocalSilver,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var id string
	err := db.QueryRowContext(context.Background(),
		`SELECT id FROM admin_notifications WHERE reserve_type = $1 AND seen = FALSE ORDER BY created_at DESC LIMIT 1`,
		domain.ReserveLocalSilver).Scan(&id)
	require.NoError(t, err)

	resp, body := doRequest(t, http.MethodPost, "/v1/notifications/"+id+"/seen", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["seen"])

	var unseen int
	err = db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM admin_notifications WHERE reserve_type = $1 AND seen = FALSE`,
		domain.ReserveLocalSilver).Scan(&unseen)
	require.NoError(t, err)
	assert.Equal(t, 0, unseen)
}

// TestAccountsPurchaseLeavesReservesAlone verifies the record-only path
func TestAccountsPurchaseLeavesReservesAlone(t *testing.T) {
	setBucketBalance(t, domain.ReserveKindCash, domain.ReserveLedger, decimal.NewFromInt(500))

	resp, body := doRequest(t, http.MethodPost, "/v1/purchases/confirm", map[string]string{
		"customerName": "Integration Walk-in",
		"metal":        "SILVER",
		"subType":      "FINE_SILVER",
		"weight":       "100",
		"rate":         "90",
		"paymentType":  "ACCOUNTS",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "RECORDED", body["state"])

	resp, body = doRequest(t, http.MethodGet, "/v1/reserves?kind=CASH&name=LEDGER", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "500", body["balance"])
}

// TestTokenAndOrderNumbering checks the printed sequence formats
func TestTokenAndOrderNumbering(t *testing.T) {
	resp, body := doRequest(t, http.MethodPost, "/v1/tokens", map[string]string{
		"name":    "Advance",
		"purpose": "integration test",
		"amount":  "100",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Regexp(t, `^Tk-\d{2,}$`, body["tokenNo"])

	resp, body = doRequest(t, http.MethodPost, "/v1/orders", map[string]interface{}{
		"customerName":    "Meera",
		"customerContact": "98765",
		"receiver":        "Asha",
		"items": []map[string]interface{}{
			{"metal": "GOLD", "ornament": "ring", "quantity": 1, "weight": "4.2"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Regexp(t, `^ORD-\d{5,}$`, body["orderId"])
}

// TestAuthRejection verifies the token middleware guards every v1 route
func TestAuthRejection(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/v1/reserves?kind=GOLD&name=LOCAL+GOLD", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
