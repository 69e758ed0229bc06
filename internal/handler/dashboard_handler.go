package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"coursemanager/internal/entity"
	"coursemanager/internal/middleware"
	"coursemanager/internal/observability"
	"coursemanager/internal/repository"
	"coursemanager/internal/session"
	"coursemanager/internal/templates"
)

const (
	msgFieldsRequired  = "All fields are required."
	msgBadDatetime     = "Invalid date or time values."
	msgInvalidUpdateID = "Invalid course ID for update."
	msgInvalidDeleteID = "Invalid course ID for deletion."

	msgCreateOK     = "Course created successfully."
	msgCreateFailed = "Failed to create course. Please try again."
	msgUpdateOK     = "Course updated successfully."
	msgUpdateFailed = "Failed to update course. Please try again."
	msgDeleteOK     = "Course deleted successfully."
	msgDeleteFailed = "Failed to delete course. Please try again."
)

// CourseStore is the course persistence the dashboard depends on.
type CourseStore interface {
	GetAll(ctx context.Context, sort, status string) ([]entity.Course, error)
	GetByID(ctx context.Context, id int) (*entity.Course, error)
	Create(ctx context.Context, data repository.CourseData) error
	Update(ctx context.Context, id int, data repository.CourseData) error
	Delete(ctx context.Context, id int) error
}

type DashboardHandler struct {
	courses  CourseStore
	sessions *session.Manager
	errors   *ErrorHandler
	tmpl     *template.Template
	log      *zap.SugaredLogger
}

func NewDashboardHandler(courses CourseStore, sessions *session.Manager, errs *ErrorHandler, log *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{
		courses:  courses,
		sessions: sessions,
		errors:   errs,
		tmpl:     template.Must(template.ParseFS(templates.FS, "layout.html", "dashboard.html")),
		log:      log,
	}
}

// actionKind is the tagged variant behind the form's "action" field, so
// dispatch is a typed switch rather than string comparisons all over.
type actionKind int

const (
	actionCreate actionKind = iota
	actionUpdate
	actionDelete
)

type courseAction struct {
	kind actionKind
	id   int
	data repository.CourseData
}

// parseCourseAction turns the POST body into a typed action. The second
// return value is the user-facing error text; both nil and "" means the
// action field named nothing this endpoint handles.
func parseCourseAction(form url.Values) (*courseAction, string) {
	switch form.Get("action") {
	case "create", "update":
		kind := actionCreate
		if form.Get("action") == "update" {
			kind = actionUpdate
		}

		id, _ := strconv.Atoi(form.Get("id"))
		if kind == actionUpdate && id <= 0 {
			return nil, msgInvalidUpdateID
		}

		name := form.Get("name")
		startDate := form.Get("start_date")
		startTime := form.Get("start_time")
		endDate := form.Get("end_date")
		endTime := form.Get("end_time")
		if name == "" || startDate == "" || startTime == "" || endDate == "" || endTime == "" {
			return nil, msgFieldsRequired
		}

		start, err := CombineDateTime(startDate, startTime)
		if err != nil {
			return nil, msgBadDatetime
		}
		end, err := CombineDateTime(endDate, endTime)
		if err != nil {
			return nil, msgBadDatetime
		}

		status := form.Get("status")
		if status == "" {
			status = entity.StatusActive
		}

		return &courseAction{
			kind: kind,
			id:   id,
			data: repository.CourseData{
				Name:          name,
				StartDatetime: start,
				EndDatetime:   end,
				Status:        status,
			},
		}, ""

	case "delete":
		id, _ := strconv.Atoi(form.Get("id"))
		if id <= 0 {
			return nil, msgInvalidDeleteID
		}
		return &courseAction{kind: actionDelete, id: id}, ""
	}

	return nil, ""
}

// DashboardPost dispatches the create/update/delete form and always
// redirects back to the listing (post/redirect/get).
func (h *DashboardHandler) DashboardPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "unable to parse form", http.StatusBadRequest)
		return
	}

	act, userErr := parseCourseAction(r.PostForm)
	switch {
	case userErr != "":
		h.sessions.SetFlash(w, r, session.FlashError, userErr)
	case act == nil:
		h.log.Warnw("dashboard post with unknown action", "action", r.PostForm.Get("action"))
	default:
		h.perform(w, r, act)
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *DashboardHandler) perform(w http.ResponseWriter, r *http.Request, act *courseAction) {
	var (
		err       error
		okMsg     string
		failedMsg string
	)

	switch act.kind {
	case actionCreate:
		err = h.courses.Create(r.Context(), act.data)
		okMsg, failedMsg = msgCreateOK, msgCreateFailed
	case actionUpdate:
		err = h.courses.Update(r.Context(), act.id, act.data)
		okMsg, failedMsg = msgUpdateOK, msgUpdateFailed
	case actionDelete:
		err = h.courses.Delete(r.Context(), act.id)
		okMsg, failedMsg = msgDeleteOK, msgDeleteFailed
	}

	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.log.Errorw("course mutation failed", "err", err)
			observability.CaptureErr(err)
		}
		h.sessions.SetFlash(w, r, session.FlashError, failedMsg)
		return
	}
	h.sessions.SetFlash(w, r, session.FlashSuccess, okMsg)
}

// editCourseView is the edit form prefill, combined timestamps split
// back into separate date and time fields.
type editCourseView struct {
	ID        int
	Name      string
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
	Status    string
}

type dashboardData struct {
	LoggedIn   bool
	UserEmail  string
	Courses    []entity.Course
	Sort       string
	Status     string
	EditCourse *editCourseView
	Flash      *session.Flash
}

// Dashboard renders the course listing with filtering, sorting and the
// optional edit prefill.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s := middleware.SessionFrom(r.Context())
	if s == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	status := r.URL.Query().Get("status")
	sort := r.URL.Query().Get("sort")
	if sort == "" {
		sort = "date_desc"
	}

	courses, err := h.courses.GetAll(r.Context(), sort, status)
	if err != nil {
		h.log.Errorw("course listing failed", "err", err)
		observability.CaptureErr(err)
		h.errors.Render(w, http.StatusInternalServerError, msgInternal)
		return
	}

	data := dashboardData{
		LoggedIn:   true,
		UserEmail:  s.UserEmail,
		Courses:    courses,
		Sort:       sort,
		Status:     status,
		EditCourse: h.editPrefill(r),
		Flash:      h.sessions.TakeFlash(w, r),
	}

	if err := h.tmpl.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		h.log.Errorw("dashboard render failed", "err", err)
	}
}

func (h *DashboardHandler) editPrefill(r *http.Request) *editCourseView {
	editID, err := strconv.Atoi(r.URL.Query().Get("edit_id"))
	if err != nil || editID <= 0 {
		return nil
	}

	course, err := h.courses.GetByID(r.Context(), editID)
	if err != nil {
		// Unknown id is silently empty edit state, not a user error.
		if !errors.Is(err, repository.ErrNotFound) {
			h.log.Errorw("edit prefill lookup failed", "err", err)
		}
		return nil
	}

	view := &editCourseView{ID: course.ID, Name: course.Name, Status: course.Status}

	if date, clock, err := SplitDateTime(course.StartDatetime); err != nil {
		h.log.Warnw("start datetime split failed", "course_id", course.ID, "err", err)
	} else {
		view.StartDate, view.StartTime = date, clock
	}
	if date, clock, err := SplitDateTime(course.EndDatetime); err != nil {
		h.log.Warnw("end datetime split failed", "course_id", course.ID, "err", err)
	} else {
		view.EndDate, view.EndTime = date, clock
	}

	return view
}
