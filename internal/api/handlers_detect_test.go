// handlers_detect_test.go - Tests for the detect handler
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agrodetect/backend/internal/catalog"
	"github.com/agrodetect/backend/internal/models"
	"github.com/agrodetect/backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDetect(t *testing.T, store *testutil.MockStorage, req *http.Request) (*httptest.ResponseRecorder, models.DetectResponse) {
	t.Helper()

	e := echo.New()
	handler := NewDetectHandler(catalog.Default(), store, quietLogger())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.HandleDetect(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.DetectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	return rec, resp
}

func designations(records []models.DiseaseRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Designation)
	}
	return out
}

func TestDetectHandler_Classification(t *testing.T) {
	tests := []struct {
		name string
		form detectForm
		want []string
	}{
		{
			name: "healthy english",
			form: detectForm{FileName: "healthy_leaf.jpg", Content: []byte{0xff, 0xd8}, Language: lang("English")},
			want: []string{"Healthy Leaf"},
		},
		{
			name: "healthy is case insensitive",
			form: detectForm{FileName: "My_HEALTHY_Plant.PNG", Language: lang("Telugu")},
			want: []string{"ఆరోగ్యమైన ఆకు"},
		},
		{
			name: "rust hindi",
			form: detectForm{FileName: "rust_sample.png", Language: lang("Hindi")},
			want: []string{"रस्ट रोग"},
		},
		{
			name: "healthy wins over rust",
			form: detectForm{FileName: "rust_then_healthy.png", Language: lang("English")},
			want: []string{"Healthy Leaf"},
		},
		{
			name: "full telugu table",
			form: detectForm{FileName: "leaf1.png", Language: lang("Telugu")},
			want: []string{"పౌడరీ మిల్డ్యూ", "లీఫ్ స్పాట్", "రస్ట్ వ్యాధి", "ఆరోగ్యమైన ఆకు"},
		},
		{
			name: "missing language falls back to english",
			form: detectForm{FileName: "rust.png"},
			want: []string{"Rust Disease"},
		},
		{
			name: "unknown language falls back to english",
			form: detectForm{FileName: "rust.png", Language: lang("French")},
			want: []string{"Rust Disease"},
		},
		{
			name: "no file returns full table",
			form: detectForm{Language: lang("Hindi")},
			want: []string{"पाउडरी मिल्ड्यू", "लीफ स्पॉट", "रस्ट रोग", "स्वस्थ पत्ता"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockStorage()
			_, resp := runDetect(t, store, newDetectRequest(t, tt.form))
			assert.Equal(t, tt.want, designations(resp.Diseases))
		})
	}
}

func TestDetectHandler_HealthyScenarioBody(t *testing.T) {
	store := testutil.NewMockStorage()
	store.Now = func() time.Time { return time.UnixMilli(1700000000000) }

	rec, _ := runDetect(t, store, newDetectRequest(t, detectForm{
		FileName: "healthy_leaf.jpg",
		Language: lang("English"),
	}))

	assert.JSONEq(t,
		`{"success":true,"diseases":[{"d":"Healthy Leaf","s":"No disease signs.","t":"No treatment needed.","p":"Maintain proper care."}]}`,
		rec.Body.String())

	files, _ := store.List(0)
	require.Len(t, files, 1)
	assert.Equal(t, "1700000000000-healthy_leaf.jpg", files[0].StoredName)
}

func TestDetectHandler_PreservesNonASCII(t *testing.T) {
	store := testutil.NewMockStorage()
	rec, _ := runDetect(t, store, newDetectRequest(t, detectForm{
		FileName: "rust.jpg",
		Language: lang("Hindi"),
	}))

	body := rec.Body.String()
	assert.Contains(t, body, "रस्ट रोग")
	assert.Contains(t, body, "नारंगी जंग जैसे धब्बे।")
	assert.NotContains(t, body, `\u`)
}

func TestDetectHandler_StoresUpload(t *testing.T) {
	store := testutil.NewMockStorage()
	content := []byte("fake image bytes")

	runDetect(t, store, newDetectRequest(t, detectForm{
		FileName: "leaf.jpg",
		Content:  content,
		Language: lang("English"),
	}))

	files, _ := store.List(0)
	require.Len(t, files, 1)
	assert.Equal(t, "leaf.jpg", files[0].Name)

	data, ok := store.Data(files[0].ID)
	require.True(t, ok)
	assert.Equal(t, content, data)
}

func TestDetectHandler_StorageFailureStillResponds(t *testing.T) {
	store := testutil.NewMockStorage()
	store.SaveErr = errors.New("disk full")

	_, resp := runDetect(t, store, newDetectRequest(t, detectForm{
		FileName: "healthy.png",
		Language: lang("Hindi"),
	}))

	assert.Equal(t, []string{"स्वस्थ पत्ता"}, designations(resp.Diseases))
	assert.Zero(t, store.FileCount())
}

func TestDetectHandler_NonMultipartBody(t *testing.T) {
	store := testutil.NewMockStorage()
	req := httptest.NewRequest(http.MethodPost, "/detect", strings.NewReader(`{"language":"Hindi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	_, resp := runDetect(t, store, req)

	assert.Len(t, resp.Diseases, 6)
	assert.Equal(t, "Powdery Mildew", resp.Diseases[0].Designation)
}

func TestDetectHandler_EmptyRustMatchSerializesEmptyArray(t *testing.T) {
	cat, err := catalog.New("English", map[string][]models.DiseaseRecord{
		"English": {{Designation: "Leaf Spot"}, {Designation: "Healthy Leaf"}},
	})
	require.NoError(t, err)

	e := echo.New()
	handler := NewDetectHandler(cat, testutil.NewMockStorage(), quietLogger())
	rec := httptest.NewRecorder()
	c := e.NewContext(newDetectRequest(t, detectForm{FileName: "rust.png"}), rec)

	require.NoError(t, handler.HandleDetect(c))
	assert.JSONEq(t, `{"success":true,"diseases":[]}`, rec.Body.String())
}
