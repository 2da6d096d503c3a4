package likes

import (
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

func TestToggleLike_Add(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	contentID := "123e4567-e89b-12d3-a456-426614174000"
	userID := "abc12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "content_posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "like_count"}).
			AddRow(contentID, "def12345-e89b-12d3-a456-426614174000", 0))

	mock.ExpectQuery(`SELECT (.+) FROM "likes" WHERE user_id = \$1 AND content_id = \$2`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Like row and counter move together
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "likes" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("like123"))
	mock.ExpectExec(`UPDATE "content_posts" SET "like_count"=like_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/content/:contentId/like", func(c *gin.Context) {
		c.Set("user_id", userID)
		ToggleLike(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/content/"+contentID+"/like", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, true, respBody["liked"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLike_Remove(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	contentID := "123e4567-e89b-12d3-a456-426614174000"
	userID := "abc12345-e89b-12d3-a456-426614174000"
	likeID := "like123"

	mock.ExpectQuery(`SELECT (.+) FROM "content_posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "like_count"}).
			AddRow(contentID, "def12345-e89b-12d3-a456-426614174000", 1))

	mock.ExpectQuery(`SELECT (.+) FROM "likes" WHERE user_id = \$1 AND content_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content_id"}).
			AddRow(likeID, userID, contentID))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes" WHERE "likes"."id" = \$1`).
		WithArgs(likeID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "content_posts" SET "like_count"=like_count - 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/content/:contentId/like", func(c *gin.Context) {
		c.Set("user_id", userID)
		ToggleLike(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/content/"+contentID+"/like", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, false, respBody["liked"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLike_ContentNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	contentID := "123e4567-e89b-12d3-a456-426614174000"
	userID := "abc12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "content_posts" WHERE id = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.POST("/content/:contentId/like", func(c *gin.Context) {
		c.Set("user_id", userID)
		ToggleLike(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/content/"+contentID+"/like", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Content not found")
}

func TestToggleLike_Unauthorized(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/content/:contentId/like", ToggleLike)

	contentID := "123e4567-e89b-12d3-a456-426614174000"

	req, _ := http.NewRequest(http.MethodPost, "/content/"+contentID+"/like", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "User not found in token")
}
