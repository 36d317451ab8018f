package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"classtrack/internal/attendance"
	"classtrack/internal/auth"
	"classtrack/internal/config"
	"classtrack/internal/roster"
	"classtrack/internal/schedule"
	"classtrack/internal/session"
)

// Handler wires the HTTP surface to the schedule and attendance services.
type Handler struct {
	sched     *schedule.Service
	schedRepo *schedule.Repository
	att       *attendance.Service
	cfg       config.App
}

// New creates a handler.
func New(sched *schedule.Service, schedRepo *schedule.Repository, att *attendance.Service, cfg config.App) *Handler {
	return &Handler{sched: sched, schedRepo: schedRepo, att: att, cfg: cfg}
}

// Register mounts all authenticated and public routes.
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/v1/faculty/login", h.Login)

	g := r.Group("/v1", auth.FacultyAuth(h.cfg.JWTSigningKey, h.cfg.JWTIssuer))
	g.GET("/schedules", h.DayFeed)
	g.POST("/schedules", h.CreateSession)
	g.GET("/schedules/slots", h.Slots)
	g.DELETE("/schedules/:id", h.CancelSession)
	g.GET("/faculty/subjects", h.Subjects)
	g.GET("/classes/:year/:department/:section/students", h.Students)
	g.GET("/classes/:year/:department/:section/student-count", h.StudentCount)
	g.GET("/attendance/:scheduleID", h.RosterSeed)
	g.POST("/attendance", h.SubmitAttendance)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a faculty member and issues a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fac, err := h.schedRepo.FacultyByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if fac == nil || !auth.CheckPassword(fac.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	tokens, err := auth.Issue(fac.ID, auth.RoleFaculty, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"faculty_id":    fac.ID,
		"faculty_name":  fac.Name,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
	})
}

// DayFeed returns the classified, ranked session list for today or tomorrow.
func (h *Handler) DayFeed(c *gin.Context) {
	now := time.Now()
	day := now
	switch c.DefaultQuery("day", "today") {
	case "today":
	case "tomorrow":
		day = now.AddDate(0, 0, 1)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be today or tomorrow"})
		return
	}

	feed, err := h.sched.DayFeed(c.Request.Context(), auth.FacultyID(c), day, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": day.Format("2006-01-02"), "schedules": feed})
}

type createSessionRequest struct {
	SubjectCode string `json:"subject_code" binding:"required"`
	SubjectName string `json:"subject_name" binding:"required"`
	Year        string `json:"year" binding:"required"`
	Department  string `json:"department" binding:"required"`
	Section     string `json:"section" binding:"required"`
	Venue       string `json:"venue"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
}

// CreateSession books a new class session in a free slot.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	created, err := h.sched.Create(c.Request.Context(), session.Session{
		FacultyID:   auth.FacultyID(c),
		SubjectCode: req.SubjectCode,
		Subject:     req.SubjectName,
		Year:        req.Year,
		Department:  req.Department,
		Section:     req.Section,
		Venue:       req.Venue,
		Date:        day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrSlotTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"schedule": created})
}

// Slots lists the free periods for a class on a day.
func (h *Handler) Slots(c *gin.Context) {
	day, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	year, dept, section := c.Query("year"), c.Query("department"), c.Query("section")
	if year == "" || dept == "" || section == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year, department and section required"})
		return
	}

	slots, err := h.sched.Slots(c.Request.Context(), year, dept, section, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// CancelSession deletes a session while its status still allows it.
func (h *Handler) CancelSession(c *gin.Context) {
	err := h.sched.Cancel(c.Request.Context(), c.Param("id"), auth.FacultyID(c), time.Now())
	switch {
	case errors.Is(err, schedule.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
	case errors.Is(err, schedule.ErrCancelForbidden):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Subjects lists the courses assigned to the authenticated faculty member.
func (h *Handler) Subjects(c *gin.Context) {
	subjects, err := h.schedRepo.ListSubjects(c.Request.Context(), auth.FacultyID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

// Students returns the class directory.
func (h *Handler) Students(c *gin.Context) {
	students, err := h.schedRepo.ListStudents(c.Request.Context(), c.Param("year"), c.Param("department"), c.Param("section"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students, "count": len(students)})
}

// StudentCount returns just the head count.
func (h *Handler) StudentCount(c *gin.Context) {
	n, err := h.schedRepo.CountStudents(c.Request.Context(), c.Param("year"), c.Param("department"), c.Param("section"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// RosterSeed returns the roster a marking workflow should start from:
// the previously submitted roster when one exists, otherwise a fresh
// all-present roster from the class list.
func (h *Handler) RosterSeed(c *gin.Context) {
	seed, err := h.att.SeedRoster(c.Request.Context(), c.Param("scheduleID"))
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := seed.Roster.Summarize()
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"existing":         seed.Existing,
		"topic":            seed.Topic,
		"attendance":       seed.Roster.Entries,
		"select_all_state": seed.Roster.SelectAll,
		"summary":          summary,
	})
}

// SubmitAttendance validates and records a roster submission.
func (h *Handler) SubmitAttendance(c *gin.Context) {
	var sub attendance.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub.FacultyID = auth.FacultyID(c)

	err := h.att.Submit(c.Request.Context(), sub, time.Now())
	var verr *roster.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
	case errors.Is(err, schedule.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
	case err != nil:
		log.Printf("submit attendance failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit attendance"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
