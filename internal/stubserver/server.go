// Package stubserver is an in-memory fake of the learning backend, used by
// client integration tests and the `stub` CLI command for local demos. It
// mirrors the wire contract but keeps everything in maps; it is not a
// production backend.
package stubserver

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

type user struct {
	ID       int
	Name     string
	Email    string
	Password string
	Type     string
}

type Server struct {
	mu         sync.Mutex
	users      map[int]*user
	tokens     map[string]int
	categories []domain.Category
	signs      []domain.Sign
	quizzes    map[int]domain.QuizInput
	progress   map[int]map[int]domain.CategoryProgress
	latest     map[int]domain.LatestProgress
	points     map[int]int
	streaks    map[int]int
	daily      map[int]bool
	nextID     int
	rnd        *rand.Rand
}

// New returns a stub backend seeded with demo users and content.
// Seed accounts: admin@lsm.mx/admin123 (admin), ana@lsm.mx/hola123 (normal).
func New() *Server {
	s := &Server{
		users:    make(map[int]*user),
		tokens:   make(map[string]int),
		quizzes:  make(map[int]domain.QuizInput),
		progress: make(map[int]map[int]domain.CategoryProgress),
		latest:   make(map[int]domain.LatestProgress),
		points:   make(map[int]int),
		streaks:  make(map[int]int),
		daily:    make(map[int]bool),
		nextID:   1,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.addUser("Admin", "admin@lsm.mx", "admin123", domain.UserTypeAdmin)
	s.addUser("Ana", "ana@lsm.mx", "hola123", domain.UserTypeNormal)

	s.categories = []domain.Category{
		{ID: 1, Name: "Saludos", IconURL: "👋"},
		{ID: 2, Name: "Familia", IconURL: "👪"},
		{ID: 3, Name: "Comida", IconURL: "🍎"},
	}
	words := map[int][]string{
		1: {"hola", "adiós", "buenos días", "buenas noches", "gracias", "por favor"},
		2: {"mamá", "papá", "hermano", "hermana", "abuela", "abuelo"},
		3: {"agua", "pan", "leche", "fruta", "sopa", "tortilla"},
	}
	id := 1
	for _, cat := range s.categories {
		for _, w := range words[cat.ID] {
			s.signs = append(s.signs, domain.Sign{
				ID:           id,
				Word:         w,
				Description:  "Seña para " + w,
				VideoURL:     "https://cdn.lsm.example/videos/" + strconv.Itoa(id) + ".mp4",
				CategoryName: cat.Name,
			})
			id++
		}
	}
	return s
}

func (s *Server) addUser(name, email, password, userType string) *user {
	u := &user{ID: s.nextID, Name: name, Email: email, Password: password, Type: userType}
	s.users[u.ID] = u
	s.nextID++
	return u
}

// Handler builds the HTTP router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/guest", s.handleGuest).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/google", s.handleGoogle).Methods(http.MethodPost)

	r.HandleFunc("/api/categorias", s.handleCategories).Methods(http.MethodGet)
	r.HandleFunc("/api/senas", s.handleSigns).Methods(http.MethodGet)

	r.HandleFunc("/api/quiz/generarDinamico", s.authed(s.handleGenerateQuiz)).Methods(http.MethodGet)
	r.HandleFunc("/api/quiz/diario/estado", s.authed(s.handleDailyState)).Methods(http.MethodGet)
	r.HandleFunc("/api/quiz/diario/completar", s.authed(s.handleDailyComplete)).Methods(http.MethodPost)

	r.HandleFunc("/api/progreso/mapa", s.authed(s.handleProgressMap)).Methods(http.MethodGet)
	r.HandleFunc("/api/progreso/guardar", s.authed(s.handleSaveProgress)).Methods(http.MethodPost)
	r.HandleFunc("/api/progreso/actual", s.authed(s.handleLatestProgress)).Methods(http.MethodGet)
	r.HandleFunc("/api/racha/actual", s.authed(s.handleStreak)).Methods(http.MethodGet)
	r.HandleFunc("/api/sesion/registrar", s.authed(s.handleRegisterSession)).Methods(http.MethodPost)
	r.HandleFunc("/api/puntos/actual", s.authed(s.handlePoints)).Methods(http.MethodGet)
	r.HandleFunc("/api/puntos/sumar", s.authed(s.handleAddPoints)).Methods(http.MethodPost)

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.HandleFunc("/categorias", s.adminOnly(s.handleCreateCategory)).Methods(http.MethodPost)
	admin.HandleFunc("/categorias/{id}", s.adminOnly(s.handleUpdateCategory)).Methods(http.MethodPut)
	admin.HandleFunc("/categorias/{id}", s.adminOnly(s.handleDeleteCategory)).Methods(http.MethodDelete)
	admin.HandleFunc("/senas", s.adminOnly(s.handleCreateSign)).Methods(http.MethodPost)
	admin.HandleFunc("/senas/{id}", s.adminOnly(s.handleUpdateSign)).Methods(http.MethodPut)
	admin.HandleFunc("/senas/{id}", s.adminOnly(s.handleDeleteSign)).Methods(http.MethodDelete)
	admin.HandleFunc("/quiz", s.adminOnly(s.handleCreateQuiz)).Methods(http.MethodPost)
	admin.HandleFunc("/quiz/{id}", s.adminOnly(s.handleUpdateQuiz)).Methods(http.MethodPut)
	admin.HandleFunc("/quiz/{id}", s.adminOnly(s.handleDeleteQuiz)).Methods(http.MethodDelete)
	admin.HandleFunc("/stats/users", s.adminOnly(s.handleUserStats)).Methods(http.MethodGet)
	admin.HandleFunc("/stats/progress/{id}", s.adminOnly(s.handleUserProgress)).Methods(http.MethodGet)
	admin.HandleFunc("/metrics", s.adminOnly(s.handleMetrics)).Methods(http.MethodGet)
	return r
}

// --- middleware ---

func (s *Server) currentUser(r *http.Request) *user {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[strings.TrimPrefix(header, "Bearer ")]
	if !ok {
		return nil
	}
	return s.users[id]
}

func (s *Server) authed(next func(http.ResponseWriter, *http.Request, *user)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := s.currentUser(r)
		if u == nil {
			writeMessage(w, http.StatusUnauthorized, "Token inválido")
			return
		}
		next(w, r, u)
	}
}

func (s *Server) adminOnly(next func(http.ResponseWriter, *http.Request, *user)) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		if u.Type != domain.UserTypeAdmin {
			writeMessage(w, http.StatusForbidden, "Se requiere rol de administrador")
			return
		}
		next(w, r, u)
	})
}

// --- auth handlers ---

func (s *Server) issueToken(u *user) string {
	token := uuid.NewString()
	s.tokens[token] = u.ID
	return token
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"correo"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == creds.Email && u.Password == creds.Password {
			writeJSON(w, http.StatusOK, authResponse(s.issueToken(u), u, "Bienvenido"))
			return
		}
	}
	writeMessage(w, http.StatusUnauthorized, "Credenciales incorrectas")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"nombre"`
		Email    string `json:"correo"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == body.Email {
			writeMessage(w, http.StatusConflict, "El correo ya está registrado")
			return
		}
	}
	u := s.addUser(body.Name, body.Email, body.Password, domain.UserTypeNormal)
	writeJSON(w, http.StatusCreated, authResponse(s.issueToken(u), u, "Cuenta creada"))
}

func (s *Server) handleGuest(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.addUser("Invitado", "", "", domain.UserTypeGuest)
	writeJSON(w, http.StatusOK, authResponse(s.issueToken(u), u, "Sesión de invitado"))
}

func (s *Server) handleGoogle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"nombre"`
		Email string `json:"correo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == body.Email {
			writeJSON(w, http.StatusOK, authResponse(s.issueToken(u), u, "Bienvenido"))
			return
		}
	}
	u := s.addUser(body.Name, body.Email, "", domain.UserTypeNormal)
	writeJSON(w, http.StatusOK, authResponse(s.issueToken(u), u, "Cuenta vinculada"))
}

func authResponse(token string, u *user, msg string) domain.AuthResponse {
	return domain.AuthResponse{
		Message: msg,
		Token:   token,
		User:    &domain.User{ID: u.ID, Name: u.Name, Email: u.Email, UserType: u.Type},
	}
}

// --- content handlers ---

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.categories)
}

func (s *Server) handleSigns(w http.ResponseWriter, r *http.Request) {
	catID, _ := strconv.Atoi(r.URL.Query().Get("categoria_id"))
	query := strings.ToLower(r.URL.Query().Get("busqueda"))

	s.mu.Lock()
	defer s.mu.Unlock()
	catName := ""
	for _, c := range s.categories {
		if c.ID == catID {
			catName = c.Name
		}
	}
	out := make([]domain.Sign, 0)
	for _, sign := range s.signs {
		if catID > 0 && sign.CategoryName != catName {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(sign.Word), query) {
			continue
		}
		out = append(out, sign)
	}
	writeJSON(w, http.StatusOK, out)
}

// --- quiz handlers ---

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request, _ *user) {
	rawCat := r.URL.Query().Get("categoria_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.signs
	title := "Quiz del día"
	if rawCat != "" {
		catID, _ := strconv.Atoi(rawCat)
		catName := ""
		for _, c := range s.categories {
			if c.ID == catID {
				catName = c.Name
			}
		}
		if catName == "" {
			writeMessage(w, http.StatusNotFound, "Categoría no encontrada")
			return
		}
		title = "Quiz: " + catName
		pool = nil
		for _, sign := range s.signs {
			if sign.CategoryName == catName {
				pool = append(pool, sign)
			}
		}
	}
	if len(pool) == 0 {
		writeMessage(w, http.StatusNotFound, "Sin contenido para el quiz")
		return
	}

	picked := make([]domain.Sign, len(pool))
	copy(picked, pool)
	s.rnd.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	if len(picked) > 10 {
		picked = picked[:10]
	}

	questions := make([]domain.Question, 0, len(picked))
	for i, sign := range picked {
		questions = append(questions, domain.Question{
			ID:            i + 1,
			Text:          "¿Qué significa esta seña?",
			VideoURL:      sign.VideoURL,
			Options:       s.optionsFor(sign),
			CorrectAnswer: sign.Word,
		})
	}
	writeJSON(w, http.StatusOK, domain.Quiz{Title: title, Questions: questions})
}

// optionsFor builds the correct word plus up to three distractors, shuffled.
func (s *Server) optionsFor(correct domain.Sign) []string {
	options := []string{correct.Word}
	indexes := s.rnd.Perm(len(s.signs))
	for _, i := range indexes {
		if len(options) == 4 {
			break
		}
		if s.signs[i].Word != correct.Word {
			options = append(options, s.signs[i].Word)
		}
	}
	s.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

func (s *Server) handleDailyState(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, domain.DailyQuizState{Completed: s.daily[u.ID], Date: today()})
}

func (s *Server) handleDailyComplete(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	s.daily[u.ID] = true
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Quiz diario completado", "fecha": today()})
}

// --- progress handlers ---

func (s *Server) handleProgressMap(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CategoryProgress, 0)
	for _, entry := range s.progress[u.ID] {
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSaveProgress(w http.ResponseWriter, r *http.Request, u *user) {
	var body struct {
		CategoryID int `json:"categoria_id"`
		Level      int `json:"nivel"`
		Index      int `json:"indice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress[u.ID] == nil {
		s.progress[u.ID] = make(map[int]domain.CategoryProgress)
	}
	s.progress[u.ID][body.CategoryID] = domain.CategoryProgress{
		CategoryID:         body.CategoryID,
		CurrentLevel:       body.Level,
		QuestionsCompleted: body.Index,
		TotalQuestions:     10,
		Completed:          body.Index >= 10,
		Locked:             false,
	}
	s.latest[u.ID] = domain.LatestProgress{
		CategoryID:      body.CategoryID,
		Level:           body.Level,
		ProgressPercent: float64(body.Index) / 10,
	}
	writeJSON(w, http.StatusOK, map[string]string{"estado": "ok"})
}

func (s *Server) handleLatestProgress(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.latest[u.ID])
}

func (s *Server) handleStreak(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	streak := s.streaks[u.ID]
	writeJSON(w, http.StatusOK, domain.Streak{Current: streak, LastSession: today(), Max: streak})
}

func (s *Server) handleRegisterSession(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	if s.streaks[u.ID] == 0 {
		s.streaks[u.ID] = 1
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Sesión registrada", "fecha": today()})
}

func (s *Server) handlePoints(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, domain.Points{Total: s.points[u.ID]})
}

func (s *Server) handleAddPoints(w http.ResponseWriter, r *http.Request, u *user) {
	var body struct {
		Points int `json:"puntos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	s.points[u.ID] += body.Points
	total := s.points[u.ID]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, domain.Points{Total: total})
}

// --- admin handlers ---

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request, _ *user) {
	var input domain.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := 0
	for _, c := range s.categories {
		if c.ID > id {
			id = c.ID
		}
	}
	s.categories = append(s.categories, domain.Category{ID: id + 1, Name: input.Name, IconURL: input.IconURL})
	writeJSON(w, http.StatusCreated, map[string]string{"mensaje": "Categoría creada"})
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request, _ *user) {
	id := pathID(r)
	var input domain.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			s.categories[i].Name = input.Name
			s.categories[i].IconURL = input.IconURL
			writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Categoría actualizada"})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Categoría no encontrada")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, _ *user) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Categoría eliminada"})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Categoría no encontrada")
}

func (s *Server) handleCreateSign(w http.ResponseWriter, r *http.Request, _ *user) {
	var input domain.SignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	catName := ""
	for _, c := range s.categories {
		if c.ID == input.CategoryID {
			catName = c.Name
		}
	}
	id := 0
	for _, sign := range s.signs {
		if sign.ID > id {
			id = sign.ID
		}
	}
	s.signs = append(s.signs, domain.Sign{
		ID:           id + 1,
		Word:         input.Word,
		Description:  input.Description,
		VideoURL:     input.VideoURL,
		ImageURL:     input.ImageURL,
		CategoryName: catName,
	})
	writeJSON(w, http.StatusCreated, map[string]string{"mensaje": "Seña creada"})
}

func (s *Server) handleUpdateSign(w http.ResponseWriter, r *http.Request, _ *user) {
	id := pathID(r)
	var input domain.SignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sign := range s.signs {
		if sign.ID == id {
			s.signs[i].Word = input.Word
			s.signs[i].Description = input.Description
			s.signs[i].VideoURL = input.VideoURL
			s.signs[i].ImageURL = input.ImageURL
			writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Seña actualizada"})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Seña no encontrada")
}

func (s *Server) handleDeleteSign(w http.ResponseWriter, r *http.Request, _ *user) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sign := range s.signs {
		if sign.ID == id {
			s.signs = append(s.signs[:i], s.signs[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Seña eliminada"})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Seña no encontrada")
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request, _ *user) {
	var input domain.QuizInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	id := len(s.quizzes) + 1
	s.quizzes[id] = input
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"mensaje": "Quiz creado", "id": id})
}

func (s *Server) handleUpdateQuiz(w http.ResponseWriter, r *http.Request, _ *user) {
	id := pathID(r)
	var input domain.QuizInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		writeMessage(w, http.StatusNotFound, "Quiz no encontrado")
		return
	}
	s.quizzes[id] = input
	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Quiz actualizado"})
}

func (s *Server) handleDeleteQuiz(w http.ResponseWriter, r *http.Request, _ *user) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		writeMessage(w, http.StatusNotFound, "Quiz no encontrado")
		return
	}
	delete(s.quizzes, id)
	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Quiz eliminado"})
}

func (s *Server) handleUserStats(w http.ResponseWriter, _ *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AdminUserStat, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, domain.AdminUserStat{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			UserType: u.Type,
			Points:   s.points[u.ID],
			Streak:   s.streaks[u.ID],
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUserProgress(w http.ResponseWriter, r *http.Request, _ *user) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	detail := domain.AdminUserDetail{
		User:     domain.User{ID: u.ID, Name: u.Name, Email: u.Email, UserType: u.Type},
		Progress: make([]domain.CategoryProgress, 0),
	}
	for _, entry := range s.progress[u.ID] {
		detail.Progress = append(detail.Progress, entry)
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, domain.AdminMetrics{
		TotalUsers:      len(s.users),
		TotalCategories: len(s.categories),
		TotalSigns:      len(s.signs),
		QuizzesToday:    len(s.daily),
	})
}

// --- helpers ---

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"mensaje": msg})
}
