package api

// Wire types for the ChickHealth backend API under /api/v1. Field names
// follow the backend's JSON exactly; clients never persist these beyond the
// lifetime of a view.

// LoginResult is returned by POST /auth/login and POST /auth/register.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserRole    string `json:"user_role"`
	UserName    string `json:"user_name"`
}

// RegisterRequest creates a new account. Phone is mandatory, email is not.
type RegisterRequest struct {
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UserProfile is the current user as returned by GET /users/me.
type UserProfile struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UserStats summarizes the current user's scan activity (GET /users/me/stats).
type UserStats struct {
	TotalScans int     `json:"total_scans"`
	SickCases  int     `json:"sick_cases"`
	Accuracy   float64 `json:"accuracy"`
}

// HistoryEntry is one row of GET /users/me/history. ImageURL is
// origin-relative; resolve it with Client.ResolveAsset.
type HistoryEntry struct {
	ID         int     `json:"id"`
	CreatedAt  string  `json:"created_at"`
	Type       string  `json:"type"`
	Result     string  `json:"result"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"`
	ImageURL   string  `json:"image_url"`
}

// KnowledgeEntry is a general farming-knowledge record, distinct from Disease.
type KnowledgeEntry struct {
	ID       int    `json:"id,omitempty"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Source   string `json:"source,omitempty"`
}

// Sync status of a disease record's indexing into the AI retrieval store.
const (
	SyncPending = "PENDING"
	SyncSuccess = "SUCCESS"
	SyncError   = "ERROR"
)

// Medicine belongs to one treatment step.
type Medicine struct {
	ID               int    `json:"id,omitempty"`
	Name             string `json:"name"`
	ActiveIngredient string `json:"active_ingredient,omitempty"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	Dosage           string `json:"dosage"`
	ReferenceSource  string `json:"reference_source,omitempty"`
}

// TreatmentStep is one ordered stage of a disease's remedy. StepOrder is
// 1-based and contiguous within a disease.
type TreatmentStep struct {
	ID          int        `json:"id,omitempty"`
	StepOrder   int        `json:"step_order"`
	Description string     `json:"description"`
	Action      string     `json:"action,omitempty"`
	Medicines   []Medicine `json:"medicines"`
}

// Disease is a knowledge-base disease record with its treatment plan.
type Disease struct {
	ID             int             `json:"id,omitempty"`
	Code           string          `json:"code"`
	NameVI         string          `json:"name_vi"`
	NameEN         string          `json:"name_en,omitempty"`
	Symptoms       string          `json:"symptoms"`
	Cause          string          `json:"cause"`
	Prevention     string          `json:"prevention"`
	Source         string          `json:"source,omitempty"`
	SyncStatus     string          `json:"sync_status,omitempty"`
	TreatmentSteps []TreatmentStep `json:"treatment_steps"`
}

// ClassificationResult is returned by POST /detect/classify.
type ClassificationResult struct {
	Disease          string             `json:"disease"`
	Confidence       float64            `json:"confidence"`
	AllProbabilities map[string]float64 `json:"all_probabilities"`
	IsHealthy        bool               `json:"is_healthy"`
	Description      string             `json:"description,omitempty"`
	Recommendation   string             `json:"recommendation,omitempty"`
	DiseaseDetail    *Disease           `json:"disease_detail,omitempty"`
}

// Verdict routes rendering on the is_healthy flag so call sites never branch
// on untyped payload fields.
type Verdict int

const (
	VerdictHealthy Verdict = iota
	VerdictSick
)

func (r ClassificationResult) Verdict() Verdict {
	if r.IsHealthy {
		return VerdictHealthy
	}
	return VerdictSick
}

// DetectionBox is one detected chicken in a flock image.
type DetectionBox struct {
	ID         int       `json:"id"`
	ClassName  string    `json:"class_name"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
}

// DetectionResult is returned by POST /detect/detect.
type DetectionResult struct {
	TotalChickens   int            `json:"total_chickens"`
	HealthyCount    int            `json:"healthy_count"`
	SickCount       int            `json:"sick_count"`
	Detections      []DetectionBox `json:"detections"`
	HasSickChickens bool           `json:"has_sick_chickens"`
	Alert           string         `json:"alert,omitempty"`
	ImageBase64     string         `json:"image_base64,omitempty"`
}

// VideoAnalysis is returned by POST /detect/video_analyze. GifURL is
// origin-relative.
type VideoAnalysis struct {
	MaxTotalChickens int    `json:"max_total_chickens"`
	MaxSickChickens  int    `json:"max_sick_chickens"`
	Alert            string `json:"alert,omitempty"`
	GifURL           string `json:"gif_url,omitempty"`
}

// ChatTurn is one prior conversation turn sent as context to /chat/ask.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports the token spend of one chat completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatAnswer is returned by POST /chat/ask.
type ChatAnswer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// User is an account as managed through /admin/users.
type User struct {
	ID          int    `json:"id,omitempty"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UserUpsert is the create/update payload for /admin/users. Password is only
// sent when set.
type UserUpsert struct {
	Email       string `json:"email,omitempty"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Password    string `json:"password,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

// AdminStats backs the dashboard overview cards (GET /admin/stats).
type AdminStats struct {
	TotalDiagnosis     int `json:"total_diagnosis"`
	SickCases          int `json:"sick_cases"`
	TotalDetections    int `json:"total_detections"`
	TotalFecalAnalysis int `json:"total_fecal_analysis"`
}

// Setting is one AI-provider configuration pair (GET/POST /admin/settings).
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TestAIRequest probes an AI provider configuration before saving it.
type TestAIRequest struct {
	Provider string `json:"ai_provider"`
	Model    string `json:"ai_model"`
	APIKey   string `json:"api_key,omitempty"`
}

// TestAIResult is the probe outcome; Status is "success" or "error".
type TestAIResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// UsageDay is one day of AI token spend.
type UsageDay struct {
	Date   string `json:"date"`
	Tokens int    `json:"tokens"`
}

// UsageStats aggregates AI usage (GET /admin/usage-stats).
type UsageStats struct {
	TotalTokens   int        `json:"total_tokens"`
	TotalRequests int        `json:"total_requests"`
	Daily         []UsageDay `json:"daily"`
}
