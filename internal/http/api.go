package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"event-planner/internal/auth"
	"event-planner/internal/domain"
	"event-planner/internal/service"
	"event-planner/internal/storage"
)

const (
	contextUserIDKey   = "user_id"
	contextUsernameKey = "username"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	events    service.EventService
	storage   storage.Service
	bucket    string
	keyPrefix string
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewHandler(users service.UserService, events service.EventService, store storage.Service, bucket, keyPrefix string, jwtSecret []byte, tokenTTL time.Duration) *Handler {
	return &Handler{
		users:     users,
		events:    events,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		events := api.Group("/events")
		events.Use(h.authRequired())
		{
			events.POST("", h.createEvent)
			events.GET("", h.listEvents)
			events.GET("/reminders", h.listReminders)
			events.PUT("/:id", h.updateEvent)
			events.DELETE("/:id", h.deleteEvent)

			events.POST("/export", h.exportEvents)
			events.GET("/exports", h.listExports)
			events.DELETE("/exports", h.deleteExports)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authRequired rejects requests without a verifiable bearer token and
// attaches the token's identity to the request context. Every failure
// answers the same way regardless of cause.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		const bearerPrefix = "Bearer "

		header := c.GetHeader("Authorization")
		if len(header) <= len(bearerPrefix) || header[:len(bearerPrefix)] != bearerPrefix {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, err := auth.ParseToken(header[len(bearerPrefix):], h.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUsernameKey, claims.Username)
		c.Next()
	}
}

func identityFromContext(c *gin.Context) (int64, string) {
	return c.GetInt64(contextUserIDKey), c.GetString(contextUsernameKey)
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user registered successfully"})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, h.jwtSecret, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type eventRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Category    string `json:"category"`
	Reminder    int    `json:"reminder" binding:"gte=0"`
}

func (req eventRequest) toInput() service.EventInput {
	return service.EventInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Category:    req.Category,
		Reminder:    req.Reminder,
	}
}

func (h *Handler) createEvent(c *gin.Context) {
	userID, _ := identityFromContext(c)

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.events.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrMalformedDateTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed date/time"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, eventToResponse(*event))
}

func (h *Handler) listEvents(c *gin.Context) {
	userID, _ := identityFromContext(c)

	filter := service.EventFilter{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}

	events, err := h.events.List(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]EventResponse, len(events))
	for i := range events {
		resp[i] = eventToResponse(events[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listReminders(c *gin.Context) {
	userID, _ := identityFromContext(c)

	entries, err := h.events.ListUpcomingReminders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]ReminderResponse, len(entries))
	for i := range entries {
		resp[i] = ReminderResponse{
			EventResponse: eventToResponse(entries[i].Event),
			ReminderTime:  entries[i].ReminderTime.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateEvent(c *gin.Context) {
	userID, _ := identityFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.events.Update(c.Request.Context(), userID, id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, service.ErrMalformedDateTime):
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed date/time"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, eventToResponse(*event))
}

func (h *Handler) deleteEvent(c *gin.Context) {
	userID, _ := identityFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.events.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) exportEvents(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	userID, username := identityFromContext(c)

	events, err := h.events.List(c.Request.Context(), userID, service.EventFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	snapshot := make([]EventResponse, len(events))
	for i := range events {
		snapshot[i] = eventToResponse(events[i])
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	key := fmt.Sprintf("%s/%s/%s.json", h.keyPrefix, h.userPrefix(username), uuid.NewString())
	location, err := h.storage.UploadJSON(c.Request.Context(), h.bucket, key, body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"location": location, "events": len(events)})
}

func (h *Handler) listExports(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	_, username := identityFromContext(c)

	prefix := fmt.Sprintf("%s/%s/", h.keyPrefix, h.userPrefix(username))
	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, prefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteExports(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	_, username := identityFromContext(c)

	prefix := fmt.Sprintf("%s/%s/", h.keyPrefix, h.userPrefix(username))
	if err := h.storage.DeletePrefix(c.Request.Context(), h.bucket, prefix); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// userPrefix keeps usernames from injecting path separators into keys.
func (h *Handler) userPrefix(username string) string {
	return url.PathEscape(username)
}

type EventResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Datetime    string `json:"datetime"`
	Reminder    int    `json:"reminder"`
	Created     string `json:"created"`
}

type ReminderResponse struct {
	EventResponse
	ReminderTime string `json:"reminderTime"`
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func eventToResponse(event domain.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		UserID:      event.UserID,
		Name:        event.Name,
		Description: event.Description,
		Category:    event.Category,
		Datetime:    event.Datetime.Format(time.RFC3339),
		Reminder:    event.Reminder,
		Created:     event.CreatedAt.Format(time.RFC3339),
	}
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
