package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clausevet/internal/domain"
	"clausevet/internal/handler"
	"clausevet/internal/service"
	"clausevet/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAnalysisHandler(maxFileSizeMB int64) (*handler.AnalysisHandler, *mocks.MockAnalysisService) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewAnalysisHandler(mockSvc, maxFileSizeMB)
	return h, mockSvc
}

// multipartUpload builds a multipart body with a single "contract" file field.
func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("contract", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Create ---

func TestAnalysisHandler_Create_Success(t *testing.T) {
	h, mockSvc := newAnalysisHandler(20)

	content := []byte("%PDF-1.4 fake contract")
	expected := &domain.Analysis{
		ID:       uuid.New(),
		Filename: "contract.pdf",
		Status:   domain.AnalysisStatusCompleted,
	}

	mockSvc.On("Analyze", mock.Anything, mock.MatchedBy(func(input *service.AnalyzeInput) bool {
		return input.Filename == "contract.pdf" && bytes.Equal(input.Data, content)
	})).Return(expected, nil)

	body, contentType := multipartUpload(t, "contract.pdf", content)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestAnalysisHandler_Create_ZeroCap_FullUploadReceived(t *testing.T) {
	// A zero size cap disables the limit; the service must see every byte.
	h, mockSvc := newAnalysisHandler(0)

	content := []byte("%PDF-1.4 full contract body")
	mockSvc.On("Analyze", mock.Anything, mock.MatchedBy(func(input *service.AnalyzeInput) bool {
		return bytes.Equal(input.Data, content)
	})).Return(&domain.Analysis{ID: uuid.New()}, nil)

	body, contentType := multipartUpload(t, "contract.pdf", content)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestAnalysisHandler_Create_MissingFile(t *testing.T) {
	h, mockSvc := newAnalysisHandler(20)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewReader(nil))
	c.Request.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalysisHandler_Create_FileTooLarge(t *testing.T) {
	// 1 MB cap, 2 MB payload
	h, mockSvc := newAnalysisHandler(1)

	body, contentType := multipartUpload(t, "contract.pdf", bytes.Repeat([]byte("a"), 2*1024*1024))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "FILE_TOO_LARGE", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalysisHandler_Create_UnsupportedFormat(t *testing.T) {
	h, mockSvc := newAnalysisHandler(20)

	mockSvc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, domain.ErrUnsupportedFormat)

	body, contentType := multipartUpload(t, "contract.txt", []byte("plain text"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "UNSUPPORTED_FORMAT", resp.Error.Code)
}

func TestAnalysisHandler_Create_CapabilityFailure(t *testing.T) {
	h, mockSvc := newAnalysisHandler(20)

	mockSvc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, domain.ErrCapabilityFailed)

	body, contentType := multipartUpload(t, "contract.pdf", []byte("%PDF-1.4"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Create(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "CAPABILITY_FAILED", resp.Error.Code)
}

// --- GetByID ---

func TestAnalysisHandler_GetByID_Success(t *testing.T) {
	h, mockSvc := newAnalysisHandler(20)

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(&domain.Analysis{ID: id}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestAnalysisHandler_GetByID_InvalidID(t *testing.T) {
	h, mockSvc := newAnalysisHandler(20)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INVALID_ID", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAnalysisHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newAnalysisHandler(20)

	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrAnalysisNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "ANALYSIS_NOT_FOUND", resp.Error.Code)
}

// --- List ---

func TestAnalysisHandler_List(t *testing.T) {
	h, mockSvc := newAnalysisHandler(20)

	mockSvc.On("List", mock.Anything).Return([]*domain.Analysis{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}

// --- Delete ---

func TestAnalysisHandler_Delete_Success(t *testing.T) {
	h, mockSvc := newAnalysisHandler(20)

	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/analyses/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestAnalysisHandler_Delete_NotFound(t *testing.T) {
	h, mockSvc := newAnalysisHandler(20)

	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(domain.ErrAnalysisNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/analyses/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
