package services

import (
	ua "github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"
)

// AuditService emits structured audit events for security-relevant actions.
// Events go to the structured log; there is no durable audit table, matching
// the process-lifetime persistence model of the rest of the system.
type AuditService struct {
	enabled bool
	logger  *logrus.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(enabled bool, logger *logrus.Logger) *AuditService {
	return &AuditService{enabled: enabled, logger: logger}
}

// DeviceInfo holds parsed information from a User-Agent string
type DeviceInfo struct {
	DeviceType string `json:"device_type"` // mobile or desktop
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	IsBot      bool   `json:"is_bot"`
}

// ParseUserAgent extracts device information from a User-Agent string
func ParseUserAgent(userAgent string) DeviceInfo {
	if userAgent == "" {
		return DeviceInfo{DeviceType: "unknown", OS: "Unknown", Browser: "Unknown"}
	}

	parser := ua.New(userAgent)
	browser, _ := parser.Browser()

	deviceType := "desktop"
	if parser.Mobile() {
		deviceType = "mobile"
	}

	return DeviceInfo{
		DeviceType: deviceType,
		OS:         parser.OS(),
		Browser:    browser,
		IsBot:      parser.Bot(),
	}
}

// LogAuthEvent records a registration/login/logout attempt
func (s *AuditService) LogAuthEvent(action string, userID *int64, email, ip, userAgent string, success bool, reason string) {
	if !s.enabled {
		return
	}

	fields := logrus.Fields{
		"audit":       true,
		"action":      action,
		"email":       email,
		"ip":          ip,
		"success":     success,
		"device_info": ParseUserAgent(userAgent),
	}
	if userID != nil {
		fields["user_id"] = *userID
	}
	if reason != "" {
		fields["reason"] = reason
	}

	entry := s.logger.WithFields(fields)
	if success {
		entry.Info("Auth event")
	} else {
		entry.Warn("Auth event failed")
	}
}

// LogBookingEvent records a booking creation or cancellation
func (s *AuditService) LogBookingEvent(action string, userID, bookingID int64, ip, userAgent string) {
	if !s.enabled {
		return
	}

	s.logger.WithFields(logrus.Fields{
		"audit":       true,
		"action":      action,
		"user_id":     userID,
		"booking_id":  bookingID,
		"ip":          ip,
		"device_info": ParseUserAgent(userAgent),
	}).Info("Booking event")
}
