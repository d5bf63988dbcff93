package core

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired. The two auth
// middlewares run globally, in order: gate (token -> identity) then policy
// (reject protected routes with no identity).
func NewRouter(cfg Config, authn *Authenticator, codec *TokenCodec, users UserRepository, employees *EmployeeService) *gin.Engine {
	startedAt := time.Now()
	r := gin.Default()

	policy := NewRoutePolicy(DefaultRouteRules())
	r.Use(BearerAuthMiddleware(codec, users, policy))
	r.Use(AccessPolicyMiddleware(policy))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
		})
	})

	r.GET("/docs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "employee-api",
			"openapi": "/docs/openapi.json",
			"routes": []string{
				"POST /authenticate",
				"GET /api/v1/employees",
				"GET /api/v1/employees/:id",
				"POST /api/v1/employees",
				"PUT /api/v1/employees/:id",
				"DELETE /api/v1/employees/:id",
			},
		})
	})
	r.GET("/docs/openapi.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"openapi": "3.0.0",
			"info":    gin.H{"title": "employee-api", "version": "1.0.0"},
		})
	})

	r.POST("/authenticate", func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
			return
		}

		token, err := authn.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect username or password")
			return
		}
		c.JSON(http.StatusOK, gin.H{"jwt": token})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/employees", func(c *gin.Context) {
			log.Printf("retrieving all employees")
			list, err := employees.List(c.Request.Context())
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch employees")
				return
			}
			c.JSON(http.StatusOK, list)
		})

		api.GET("/employees/:id", func(c *gin.Context) {
			id, ok := employeeID(c)
			if !ok {
				return
			}
			log.Printf("retrieving employee with id=%d", id)
			e, err := employees.Get(c.Request.Context(), id)
			if err != nil {
				if errors.Is(err, ErrEmployeeNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "employee not found")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch employee")
				return
			}
			c.JSON(http.StatusOK, e)
		})

		api.POST("/employees", func(c *gin.Context) {
			var e Employee
			if err := c.ShouldBindJSON(&e); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
				return
			}
			log.Printf("saving new employee")
			id, err := employees.Create(c.Request.Context(), e)
			if err != nil {
				if errors.Is(err, ErrEmployeeInvalid) {
					respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create employee")
				return
			}
			c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Employee Created Successfully"})
		})

		api.PUT("/employees/:id", func(c *gin.Context) {
			id, ok := employeeID(c)
			if !ok {
				return
			}
			var e Employee
			if err := c.ShouldBindJSON(&e); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
				return
			}
			if e.ID != id {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "mismatched employee ids in request")
				return
			}
			log.Printf("updating employee with id=%d", id)
			if err := employees.Update(c.Request.Context(), e); err != nil {
				switch {
				case errors.Is(err, ErrEmployeeInvalid):
					respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
				case errors.Is(err, ErrEmployeeNotFound):
					respondError(c, http.StatusNotFound, "NOT_FOUND", "employee not found")
				default:
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to update employee")
				}
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Employee Updated Successfully"})
		})

		api.DELETE("/employees/:id", func(c *gin.Context) {
			id, ok := employeeID(c)
			if !ok {
				return
			}
			log.Printf("deleting employee with id=%d", id)
			if err := employees.Delete(c.Request.Context(), id); err != nil {
				if errors.Is(err, ErrEmployeeNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "employee not found")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete employee")
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Employee Deleted Successfully"})
		})
	}

	return r
}

// employeeID parses the :id path param and rejects non-positive values.
func employeeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid employee id")
		return 0, false
	}
	return id, true
}
