package domain

// DailyQuizCategory is the sentinel category ID requesting the quiz of the
// day instead of a category-level quiz.
const DailyQuizCategory = -1

// User types as reported by the backend in tipo_usuario.
const (
	UserTypeNormal = "normal"
	UserTypeAdmin  = "admin"
	UserTypeGuest  = "invitado"
)

// Session is the persisted credential trio. An empty Token means no session.
type Session struct {
	Token    string `json:"token"`
	UserName string `json:"user_name"`
	UserType string `json:"user_type"`
}

// LoggedIn reports whether a token is present.
func (s Session) LoggedIn() bool { return s.Token != "" }

// IsGuest reports whether the session belongs to a guest login.
func (s Session) IsGuest() bool { return s.UserType == UserTypeGuest }

// User is the account record embedded in auth responses.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	UserType string `json:"tipo_usuario"`
}

// AuthResponse is the shared shape of all /api/auth/* responses.
type AuthResponse struct {
	Message string `json:"mensaje"`
	Token   string `json:"token"`
	User    *User  `json:"usuario"`
}

// Category is a vocabulary category. Refreshed wholesale per fetch.
type Category struct {
	ID      int    `json:"id"`
	Name    string `json:"nombre"`
	IconURL string `json:"icon_url"`
}

// Sign is a single vocabulary entry.
type Sign struct {
	ID           int    `json:"id"`
	Word         string `json:"palabra"`
	Description  string `json:"descripcion"`
	VideoURL     string `json:"video_url"`
	ImageURL     string `json:"imagen_url"`
	CategoryName string `json:"categoria_nombre"`
}

// Question is one multiple-choice quiz question. CorrectAnswer may be empty,
// in which case no option ever scores.
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"pregunta_texto"`
	VideoURL      string   `json:"video_asociado_url"`
	ImageURL      string   `json:"imagen_asociada_url"`
	Options       []string `json:"opciones"`
	CorrectAnswer string   `json:"respuesta_correcta"`
}

// Quiz is an ordered question sequence. ID 0 marks a dynamically generated
// quiz that is never persisted server-side.
type Quiz struct {
	ID        int        `json:"id"`
	Title     string     `json:"titulo"`
	Questions []Question `json:"preguntas"`
}

// CategoryProgress is the server-authoritative per-category progress entry.
type CategoryProgress struct {
	CategoryID         int  `json:"categoria_id"`
	CurrentLevel       int  `json:"nivel_actual"`
	QuestionsCompleted int  `json:"preguntas_completadas"`
	TotalQuestions     int  `json:"total_preguntas"`
	Completed          bool `json:"completado"`
	Locked             bool `json:"bloqueado"`
}

// LatestProgress is the resume pointer returned by /api/progreso/actual.
type LatestProgress struct {
	CategoryID      int     `json:"categoria_id"`
	Level           int     `json:"nivel"`
	ProgressPercent float64 `json:"progreso_percent"`
	CategoryName    string  `json:"categoria_nombre"`
}

// ResumeIndex converts the fractional progress into a question index,
// matching the backend convention of ten questions per level.
func (p LatestProgress) ResumeIndex() int {
	return int(p.ProgressPercent * 10)
}

// Streak is the daily-practice streak summary.
type Streak struct {
	Current     int    `json:"racha_actual"`
	LastSession string `json:"ultima_sesion"`
	Max         int    `json:"racha_maxima"`
}

// Points is the accumulated score balance for the current user.
type Points struct {
	Total int `json:"puntos"`
}

// DailyQuizState reports whether today's daily quiz was completed.
type DailyQuizState struct {
	Completed bool   `json:"completado"`
	Date      string `json:"fecha"`
}

// CategoryInput is the admin payload for creating or editing a category.
type CategoryInput struct {
	Name    string `json:"nombre"`
	IconURL string `json:"icon_url"`
}

// SignInput is the admin payload for creating or editing a sign.
type SignInput struct {
	Word        string `json:"palabra"`
	Description string `json:"descripcion"`
	VideoURL    string `json:"video_url"`
	ImageURL    string `json:"imagen_url"`
	CategoryID  int    `json:"categoria_id"`
}

// QuizInput is the admin payload for creating or editing a persisted quiz.
type QuizInput struct {
	Title      string     `json:"titulo"`
	CategoryID int        `json:"categoria_id"`
	Level      int        `json:"nivel"`
	Questions  []Question `json:"preguntas"`
}

// AdminUserStat is one row of the admin user statistics listing.
type AdminUserStat struct {
	ID       int    `json:"id"`
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	UserType string `json:"tipo_usuario"`
	Points   int    `json:"puntos"`
	Streak   int    `json:"racha"`
}

// AdminUserDetail is the per-user drill-down with full progress.
type AdminUserDetail struct {
	User     User               `json:"usuario"`
	Progress []CategoryProgress `json:"progreso"`
}

// AdminMetrics is the global backend metrics snapshot.
type AdminMetrics struct {
	TotalUsers      int `json:"total_usuarios"`
	TotalCategories int `json:"total_categorias"`
	TotalSigns      int `json:"total_senas"`
	QuizzesToday    int `json:"quizzes_hoy"`
}
