package users

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
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func replaceTiersRequest(userID string, body map[string]interface{}) *httptest.ResponseRecorder {
	r := testutils.SetupTestRouter()
	r.PUT("/users/subscription-tiers", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		ReplaceSubscriptionTiers(c)
	})

	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, "/users/subscription-tiers", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestReplaceSubscriptionTiers_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	creatorID := "def12345-e89b-12d3-a456-426614174000"

	// Old set deleted and new set inserted in the same transaction
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "subscription_tiers" WHERE creator_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(`INSERT INTO "subscription_tiers" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tier1"))
	mock.ExpectQuery(`INSERT INTO "subscription_tiers" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tier2"))
	mock.ExpectCommit()

	resp := replaceTiersRequest(creatorID, map[string]interface{}{
		"tiers": []map[string]interface{}{
			{"tierName": "Supporter", "tierLevel": 1, "price": "4.99"},
			{"tierName": "Superfan", "tierLevel": 2, "price": "14.99"},
		},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceSubscriptionTiers_TooManyTiers(t *testing.T) {
	resp := replaceTiersRequest("def12345-e89b-12d3-a456-426614174000", map[string]interface{}{
		"tiers": []map[string]interface{}{
			{"tierName": "T1", "tierLevel": 1, "price": "4.99"},
			{"tierName": "T2", "tierLevel": 2, "price": "9.99"},
			{"tierName": "T3", "tierLevel": 3, "price": "14.99"},
			{"tierName": "T4", "tierLevel": 3, "price": "19.99"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Between 1 and 3 tiers")
}

func TestReplaceSubscriptionTiers_InvalidLevel(t *testing.T) {
	resp := replaceTiersRequest("def12345-e89b-12d3-a456-426614174000", map[string]interface{}{
		"tiers": []map[string]interface{}{
			{"tierName": "T1", "tierLevel": 5, "price": "4.99"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Tier level must be between 1 and 3")
}

func TestReplaceSubscriptionTiers_DuplicateLevel(t *testing.T) {
	resp := replaceTiersRequest("def12345-e89b-12d3-a456-426614174000", map[string]interface{}{
		"tiers": []map[string]interface{}{
			{"tierName": "T1", "tierLevel": 1, "price": "4.99"},
			{"tierName": "T2", "tierLevel": 1, "price": "9.99"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Duplicate tier level")
}

func TestReplaceSubscriptionTiers_PriceBelowMinimum(t *testing.T) {
	resp := replaceTiersRequest("def12345-e89b-12d3-a456-426614174000", map[string]interface{}{
		"tiers": []map[string]interface{}{
			{"tierName": "T1", "tierLevel": 1, "price": "0.25"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "at least 0.50")
}

func TestReplaceSubscriptionTiers_Unauthorized(t *testing.T) {
	resp := replaceTiersRequest("", map[string]interface{}{
		"tiers": []map[string]interface{}{
			{"tierName": "T1", "tierLevel": 1, "price": "4.99"},
		},
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
