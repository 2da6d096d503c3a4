package messages

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

func sendMessageRequest(userID string, body map[string]interface{}) *httptest.ResponseRecorder {
	r := testutils.SetupTestRouter()
	r.POST("/messages", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		SendMessage(c)
	})

	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/messages", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

// A free message arrives unlocked
func TestSendMessage_FreeSuccess(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	senderID := "abc12345-e89b-12d3-a456-426614174000"
	recipientID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1 AND is_active = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active"}).
			AddRow(recipientID, true))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "messages" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("msg123"))
	mock.ExpectCommit()

	resp := sendMessageRequest(senderID, map[string]interface{}{
		"recipientId": recipientID,
		"content":     "Hello!",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, true, respBody["isUnlocked"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A paid message starts locked for the recipient
func TestSendMessage_PaidStartsLocked(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	senderID := "def12345-e89b-12d3-a456-426614174000"
	recipientID := "abc12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1 AND is_active = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active"}).
			AddRow(recipientID, true))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "messages" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("msg123"))
	mock.ExpectCommit()

	resp := sendMessageRequest(senderID, map[string]interface{}{
		"recipientId": recipientID,
		"content":     "Exclusive photo set",
		"isPaid":      true,
		"price":       "5.00",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, false, respBody["isUnlocked"])
}

func TestSendMessage_PaidWithoutPrice(t *testing.T) {
	resp := sendMessageRequest("abc12345-e89b-12d3-a456-426614174000", map[string]interface{}{
		"recipientId": "def12345-e89b-12d3-a456-426614174000",
		"content":     "Exclusive",
		"isPaid":      true,
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Price required")
}

func TestSendMessage_PaidPriceBelowMinimum(t *testing.T) {
	resp := sendMessageRequest("abc12345-e89b-12d3-a456-426614174000", map[string]interface{}{
		"recipientId": "def12345-e89b-12d3-a456-426614174000",
		"content":     "Exclusive",
		"isPaid":      true,
		"price":       "0.10",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSendMessage_RecipientNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1 AND is_active = \$2`).
		WillReturnError(gorm.ErrRecordNotFound)

	resp := sendMessageRequest("abc12345-e89b-12d3-a456-426614174000", map[string]interface{}{
		"recipientId": "def12345-e89b-12d3-a456-426614174000",
		"content":     "Hello!",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestMarkMessageRead_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	messageID := "123e4567-e89b-12d3-a456-426614174000"
	userID := "abc12345-e89b-12d3-a456-426614174000"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "messages" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.PUT("/messages/:messageId/read", func(c *gin.Context) {
		c.Set("user_id", userID)
		MarkMessageRead(c)
	})

	req, _ := http.NewRequest(http.MethodPut, "/messages/"+messageID+"/read", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMessage_NotSender(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	messageID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "messages" WHERE id = \$1 AND sender_id = \$2`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.DELETE("/messages/:messageId", func(c *gin.Context) {
		c.Set("user_id", "abc12345-e89b-12d3-a456-426614174000")
		DeleteMessage(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/messages/"+messageID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSendMessage_Unauthorized(t *testing.T) {
	resp := sendMessageRequest("", map[string]interface{}{
		"recipientId": "def12345-e89b-12d3-a456-426614174000",
		"content":     "Hello!",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
