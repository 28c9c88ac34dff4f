package weather

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetWeather_DevModeReturnsCannedReport(t *testing.T) {
	client := NewClient(Config{APIURL: "https://api.openweathermap.org/data/2.5", APIKey: ""})

	report := client.GetWeather("Geneva", "CH")
	assert.Equal(t, 15.0, report.Temp)
	assert.Equal(t, "clear sky", report.Description)
}

func TestGetWeather_ParsesAPIResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Geneva,CH", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"main":{"temp":8.5},"weather":[{"description":"light snow","icon":"13d"}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIURL: server.URL, APIKey: "test-key", Timeout: time.Second})

	report := client.GetWeather("Geneva", "CH")
	assert.Equal(t, 8.5, report.Temp)
	assert.Equal(t, "light snow", report.Description)
	assert.Equal(t, "13d", report.Icon)
}

func TestGetWeather_DegradesOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{APIURL: server.URL, APIKey: "test-key", Timeout: time.Second})

	report := client.GetWeather("Geneva", "CH")
	assert.Equal(t, 15.0, report.Temp)
	assert.Equal(t, "clear sky", report.Description)
}

func TestOKForElderlyMountain(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		ok     bool
	}{
		{"mild and clear", Report{Temp: 15, Description: "clear sky"}, true},
		{"exactly ten degrees", Report{Temp: 10, Description: "few clouds"}, true},
		{"too cold", Report{Temp: 9.9, Description: "clear sky"}, false},
		{"rain", Report{Temp: 18, Description: "light rain"}, false},
		{"snow", Report{Temp: 12, Description: "Snow showers"}, false},
		{"storm", Report{Temp: 20, Description: "tropical storm"}, false},
		{"thunder", Report{Temp: 22, Description: "thunderstorm"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, OKForElderlyMountain(tt.report))
		})
	}
}
