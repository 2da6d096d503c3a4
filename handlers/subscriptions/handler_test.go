package subscriptions

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ryobiguy/fanvault/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func subscribeRequest(userID, role string, body map[string]interface{}) *httptest.ResponseRecorder {
	r := testutils.SetupTestRouter()
	r.POST("/subscriptions/subscribe", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
			c.Set("role", role)
		}
		Subscribe(c)
	})

	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/subscribe", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestSubscribe_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	fanID := "abc12345-e89b-12d3-a456-426614174000"
	creatorID := "def12345-e89b-12d3-a456-426614174000"
	tierID := "123e4567-e89b-12d3-a456-426614174000"

	// No active subscription yet
	mock.ExpectQuery(`SELECT (.+) FROM "fan_subscriptions" WHERE fan_id = \$1 AND creator_id = \$2 AND status = \$3`).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectQuery(`SELECT (.+) FROM "subscription_tiers" WHERE id = \$1 AND creator_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "tier_name", "tier_level", "price"}).
			AddRow(tierID, creatorID, "Premium", 2, "19.99"))

	// Subscription row plus both ledger rows in one transaction
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "fan_subscriptions" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sub123"))
	mock.ExpectQuery(`INSERT INTO "transactions" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tx-fan"))
	mock.ExpectQuery(`INSERT INTO "transactions" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tx-creator"))
	mock.ExpectCommit()

	resp := subscribeRequest(fanID, "FAN", map[string]interface{}{
		"creatorId": creatorID,
		"tierId":    tierID,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscribe_AlreadySubscribed(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	fanID := "abc12345-e89b-12d3-a456-426614174000"
	creatorID := "def12345-e89b-12d3-a456-426614174000"
	tierID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "fan_subscriptions" WHERE fan_id = \$1 AND creator_id = \$2 AND status = \$3`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fan_id", "creator_id", "status"}).
			AddRow("sub123", fanID, creatorID, "active"))

	resp := subscribeRequest(fanID, "FAN", map[string]interface{}{
		"creatorId": creatorID,
		"tierId":    tierID,
	})

	assert.Equal(t, http.StatusConflict, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Already subscribed")
}

func TestSubscribe_TierNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	fanID := "abc12345-e89b-12d3-a456-426614174000"
	creatorID := "def12345-e89b-12d3-a456-426614174000"
	tierID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "fan_subscriptions" WHERE fan_id = \$1 AND creator_id = \$2 AND status = \$3`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Tier exists but belongs to another creator: same 404
	mock.ExpectQuery(`SELECT (.+) FROM "subscription_tiers" WHERE id = \$1 AND creator_id = \$2`).
		WillReturnError(gorm.ErrRecordNotFound)

	resp := subscribeRequest(fanID, "FAN", map[string]interface{}{
		"creatorId": creatorID,
		"tierId":    tierID,
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSubscribe_CreatorRoleForbidden(t *testing.T) {
	resp := subscribeRequest("def12345-e89b-12d3-a456-426614174000", "CREATOR", map[string]interface{}{
		"creatorId": "def12345-e89b-12d3-a456-426614174000",
		"tierId":    "123e4567-e89b-12d3-a456-426614174000",
	})

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestSubscribe_InvalidCreatorID(t *testing.T) {
	resp := subscribeRequest("abc12345-e89b-12d3-a456-426614174000", "FAN", map[string]interface{}{
		"creatorId": "not-a-uuid",
		"tierId":    "123e4567-e89b-12d3-a456-426614174000",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUnsubscribe_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	fanID := "abc12345-e89b-12d3-a456-426614174000"
	creatorID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "fan_subscriptions" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/subscriptions/unsubscribe/:creatorId", func(c *gin.Context) {
		c.Set("user_id", fanID)
		Unsubscribe(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/unsubscribe/"+creatorID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnsubscribe_NoActiveSubscription(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	fanID := "abc12345-e89b-12d3-a456-426614174000"
	creatorID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "fan_subscriptions" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/subscriptions/unsubscribe/:creatorId", func(c *gin.Context) {
		c.Set("user_id", fanID)
		Unsubscribe(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/unsubscribe/"+creatorID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetSubscriptionStatus_NotSubscribed(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	fanID := "abc12345-e89b-12d3-a456-426614174000"
	creatorID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "fan_subscriptions" WHERE fan_id = \$1 AND creator_id = \$2 AND status = \$3`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.GET("/subscriptions/status/:creatorId", func(c *gin.Context) {
		c.Set("user_id", fanID)
		GetSubscriptionStatus(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/subscriptions/status/"+creatorID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, false, respBody["subscribed"])
}

func TestGetMySubscribers_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	creatorID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "fan_subscriptions" WHERE creator_id = \$1 AND status = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fan_id", "creator_id", "status"}).
			AddRow("sub1", "abc12345-e89b-12d3-a456-426614174000", creatorID, "active").
			AddRow("sub2", "bcd12345-e89b-12d3-a456-426614174000", creatorID, "active"))

	r := testutils.SetupTestRouter()
	r.GET("/subscriptions/my-subscribers", func(c *gin.Context) {
		c.Set("user_id", creatorID)
		GetMySubscribers(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/subscriptions/my-subscribers", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, float64(2), respBody["total"])
}
