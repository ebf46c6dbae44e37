package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taskwave/internal/service"
)

var fakeAPISecret = []byte("taskwave-test-secret")

// FakeAPI is an HTTP server speaking the TaskWave REST API, backed by a
// FakeService. It issues real HS256 tokens and counts every request.
type FakeAPI struct {
	*httptest.Server

	Service *FakeService

	mu        sync.Mutex
	requests  int
	lastAuth  string
	lastReqID string
}

// NewFakeAPI starts a server. Call Close when done.
func NewFakeAPI() *FakeAPI {
	gin.SetMode(gin.TestMode)

	api := &FakeAPI{Service: NewFakeService()}
	r := gin.New()
	r.Use(api.count)

	r.POST("/auth/login", api.login)
	r.POST("/auth/register", api.register)

	tasks := r.Group("/Task", api.requireToken)
	tasks.GET("", api.listTasks)
	tasks.POST("", api.createTask)
	tasks.PUT("/:id", api.updateTask)
	tasks.DELETE("/:id", api.deleteTask)

	api.Server = httptest.NewServer(r)
	return api
}

// Requests returns the number of requests received.
func (a *FakeAPI) Requests() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests
}

// LastAuthorization returns the Authorization header of the last request.
func (a *FakeAPI) LastAuthorization() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastAuth
}

// LastRequestID returns the X-Request-ID header of the last request.
func (a *FakeAPI) LastRequestID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastReqID
}

// IssueToken signs a token for email, as login would.
func IssueToken(email string) string {
	claims := jwt.MapClaims{
		"sub":   email,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(fakeAPISecret)
	if err != nil {
		panic(err)
	}
	return signed
}

func (a *FakeAPI) count(c *gin.Context) {
	a.mu.Lock()
	a.requests++
	a.lastAuth = c.GetHeader("Authorization")
	a.lastReqID = c.GetHeader("X-Request-ID")
	a.mu.Unlock()
	c.Next()
}

func (a *FakeAPI) requireToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		c.String(http.StatusUnauthorized, "Unauthorized")
		c.Abort()
		return
	}
	_, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return fakeAPISecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		c.String(http.StatusUnauthorized, "Invalid token")
		c.Abort()
		return
	}
	c.Next()
}

func (a *FakeAPI) login(c *gin.Context) {
	var creds service.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	res, err := a.Service.Login(c.Request.Context(), creds)
	if err != nil {
		c.String(http.StatusUnauthorized, "Invalid email or password")
		return
	}
	res.Token = IssueToken(creds.Email)
	c.JSON(http.StatusOK, res)
}

func (a *FakeAPI) register(c *gin.Context) {
	var reg service.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	res, err := a.Service.Register(c.Request.Context(), reg)
	if err != nil {
		c.String(http.StatusBadRequest, "User already exists")
		return
	}
	res.Token = IssueToken(reg.Email)
	c.JSON(http.StatusOK, res)
}

func (a *FakeAPI) listTasks(c *gin.Context) {
	tasks, err := a.Service.ListTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (a *FakeAPI) createTask(c *gin.Context) {
	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	task, err := a.Service.CreateTask(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (a *FakeAPI) updateTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid id")
		return
	}
	var task service.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	if task.ID != id {
		c.String(http.StatusBadRequest, "Id mismatch")
		return
	}
	updated, err := a.Service.UpdateTask(c.Request.Context(), task)
	if err != nil {
		c.String(http.StatusNotFound, "Task not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (a *FakeAPI) deleteTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid id")
		return
	}
	if err := a.Service.DeleteTask(c.Request.Context(), id); err != nil {
		c.String(http.StatusNotFound, "Task not found")
		return
	}
	c.Status(http.StatusNoContent)
}
