package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/service"
)

type stubInquiryService struct {
	created   dto.InquiryResponse
	createErr error
	listed    []dto.InquiryResponse
	listErr   error
	deleteErr error
	deletedID string
}

func (s *stubInquiryService) Create(ctx context.Context, userID uint, req dto.InquiryCreateRequest) (dto.InquiryResponse, error) {
	return s.created, s.createErr
}

func (s *stubInquiryService) List(ctx context.Context, userID uint) ([]dto.InquiryResponse, error) {
	return s.listed, s.listErr
}

func (s *stubInquiryService) Delete(ctx context.Context, userID uint, inquiryID string) error {
	s.deletedID = inquiryID
	return s.deleteErr
}

func newInquiryApp(stub *stubInquiryService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/inquiries", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		return c.Next()
	})
	NewInquiryHandler(stub, zerolog.Nop()).Register(group)
	return app
}

func TestInquiryHandlerCreate(t *testing.T) {
	stub := &stubInquiryService{created: dto.InquiryResponse{ID: "abc", Title: "on patience"}}
	app := newInquiryApp(stub)

	resp := postJSON(t, app, "/api/v1/inquiries/", dto.InquiryCreateRequest{
		Title:   "on patience",
		Content: "stored reflection",
	})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.True(t, resp.Success)
}

func TestInquiryHandlerList(t *testing.T) {
	stub := &stubInquiryService{listed: []dto.InquiryResponse{{ID: "abc"}, {ID: "def"}}}
	app := newInquiryApp(stub)

	req := httptest.NewRequest("GET", "/api/v1/inquiries/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	var inquiries []dto.InquiryResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &inquiries))
	require.Len(t, inquiries, 2)
}

func TestInquiryHandlerDeleteNotFound(t *testing.T) {
	stub := &stubInquiryService{deleteErr: service.ErrInquiryNotFound}
	app := newInquiryApp(stub)

	req := httptest.NewRequest("DELETE", "/api/v1/inquiries/missing-id", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, "missing-id", stub.deletedID)
}

func TestInquiryHandlerDelete(t *testing.T) {
	stub := &stubInquiryService{}
	app := newInquiryApp(stub)

	req := httptest.NewRequest("DELETE", "/api/v1/inquiries/abc", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "abc", stub.deletedID)
}
