package weather

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Report is the slice of current conditions the tour detail view needs
type Report struct {
	Temp        float64 `json:"temp"` // celsius
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Client fetches current weather from the OpenWeather API. With an empty API
// key (development mode) it returns canned mild conditions instead of
// calling out.
type Client struct {
	apiURL string
	apiKey string
	client *http.Client
}

// Config holds configuration for the OpenWeather client
type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new OpenWeather client
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 6 * time.Second
	}
	return &Client{
		apiURL: strings.TrimRight(config.APIURL, "/"),
		apiKey: config.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

type openWeatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// GetWeather returns current conditions for a city. Failures degrade to the
// canned report; the booking flow never depends on this call succeeding.
func (c *Client) GetWeather(city, country string) Report {
	if c.apiKey == "" {
		return mockReport()
	}

	query := url.Values{}
	query.Set("q", fmt.Sprintf("%s,%s", city, country))
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	resp, err := c.client.Get(fmt.Sprintf("%s/weather?%s", c.apiURL, query.Encode()))
	if err != nil {
		return mockReport()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mockReport()
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return mockReport()
	}

	report := Report{Temp: payload.Main.Temp, Icon: "01d"}
	if len(payload.Weather) > 0 {
		report.Description = payload.Weather[0].Description
		report.Icon = payload.Weather[0].Icon
	}
	return report
}

// badConditions are weather descriptions unsuitable for elderly travelers in
// mountainous terrain
var badConditions = []string{"rain", "snow", "storm", "thunder"}

// OKForElderlyMountain reports whether conditions are suitable for an
// elderly_mountain tour: at least 10 degrees and none of the bad conditions.
func OKForElderlyMountain(report Report) bool {
	if report.Temp < 10 {
		return false
	}
	desc := strings.ToLower(report.Description)
	for _, word := range badConditions {
		if strings.Contains(desc, word) {
			return false
		}
	}
	return true
}

func mockReport() Report {
	return Report{Temp: 15, Description: "clear sky", Icon: "01d"}
}
