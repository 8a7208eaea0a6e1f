package guide

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func testApp(svc *Service) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/guides"), svc, func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-1")
		return c.Next()
	})
	return app
}

func TestGuideHandlersCreateAndList(t *testing.T) {
	mock := newMock(t)
	app := testApp(NewService(mock, nil))

	mock.ExpectQuery(`INSERT INTO guides`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Kyoto temples", "Kyoto", "Visit early.", []string{}).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	body, _ := json.Marshal(Draft{Title: "Kyoto temples", Location: "Kyoto", Content: "Visit early."})
	req := httptest.NewRequest(http.MethodPost, "/guides/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	mock.ExpectQuery(`SELECT id, user_id, title, location, content, photo_urls, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "location", "content", "photo_urls", "created_at"}).
			AddRow("guide-1", "user-1", "Kyoto temples", "Kyoto", "Visit early.", []string{}, time.Now()))

	req = httptest.NewRequest(http.MethodGet, "/guides/", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}
}

func TestGuideHandlersCreateMissingFields(t *testing.T) {
	app := testApp(NewService(nil, nil))

	body, _ := json.Marshal(Draft{Title: "only title"})
	req := httptest.NewRequest(http.MethodPost, "/guides/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestGuideHandlersUpdateNotFound(t *testing.T) {
	mock := newMock(t)
	app := testApp(NewService(mock, nil))

	mock.ExpectQuery(`UPDATE guides`).
		WithArgs("missing", "user-1", "T", "L", "C", []string{}).
		WillReturnError(pgx.ErrNoRows)

	body, _ := json.Marshal(Draft{Title: "T", Location: "L", Content: "C"})
	req := httptest.NewRequest(http.MethodPut, "/guides/missing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestGuideHandlersDelete(t *testing.T) {
	mock := newMock(t)
	app := testApp(NewService(mock, nil))

	mock.ExpectQuery(`DELETE FROM guides`).
		WithArgs("guide-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("guide-1"))

	req := httptest.NewRequest(http.MethodDelete, "/guides/guide-1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %v", err)
	}
}

func TestGuideHandlersDeleteError(t *testing.T) {
	mock := newMock(t)
	app := testApp(NewService(mock, nil))

	mock.ExpectQuery(`DELETE FROM guides`).
		WithArgs("guide-err", "user-1").
		WillReturnError(errQuery)

	req := httptest.NewRequest(http.MethodDelete, "/guides/guide-err", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected delete error")
	}
}
