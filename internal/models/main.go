// Package models defines the entities mirrored from the E-Profile API and
// the response envelope every endpoint uses.
package models

// Status values carried by the response envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the {status, message, data} wrapper around every API response.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// User is the Users row as the API returns it. The role field arrives
// inconsistently typed (numeric code, English or Vietnamese label), so it is
// kept raw here and interpreted by profile.ClassifyRole.
type User struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	FirstName          string `json:"firstName,omitempty"`
	LastName           string `json:"lastName,omitempty"`
	PhoneNumber        string `json:"phoneNumber,omitempty"`
	Role               any    `json:"role,omitempty"`
	Gender             string `json:"gender,omitempty"`
	Birthday           string `json:"birthday,omitempty"`
	Sport              string `json:"sport,omitempty"`
	Country            string `json:"country,omitempty"`
	Address            string `json:"address,omitempty"`
	District           string `json:"district,omitempty"`
	City               string `json:"city,omitempty"`
	NationalIDCardNo   string `json:"national_id_card_no,omitempty"`
	PassportNo         string `json:"passport_no,omitempty"`
	PassportExpiryDate string `json:"passport_expiry_date,omitempty"`
	ProfilePicturePath string `json:"profile_picture_path,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
	UpdatedAt          string `json:"updated_at,omitempty"`
	IsActive           *int   `json:"is_active,omitempty"`
}

// Athlete is the supplementary profile row matched to a User by UserID.
type Athlete struct {
	ID                 int64  `json:"id"`
	UserID             int64  `json:"user_id,omitempty"`
	FirstName          string `json:"first_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
	Gender             string `json:"gender,omitempty"`
	DateOfBirth        string `json:"date_of_birth,omitempty"`
	ContactPhone       string `json:"contact_phone,omitempty"`
	ContactEmail       string `json:"contact_email,omitempty"`
	Nationality        string `json:"nationality,omitempty"`
	ProfilePicturePath string `json:"athlete_profile_picture_path,omitempty"`
}

// Competition is the master catalog entity referenced by per-sport result rows.
type Competition struct {
	ID              int64  `json:"id"`
	SportType       string `json:"sport_type,omitempty"`
	CompetitionName string `json:"competition_name,omitempty"`
	City            string `json:"city,omitempty"`
	Country         string `json:"country,omitempty"`
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// CompetitionResult is a per-sport competition row. The shape is identical
// across sports; the sport only selects which collection is queried.
type CompetitionResult struct {
	ID             int64   `json:"id"`
	AthleteID      int64   `json:"athlete_id"`
	CompetitionID  FlexInt `json:"competition_id,omitempty"`
	MedalWon       string  `json:"medal_won,omitempty"`
	FinalRank      FlexInt `json:"final_rank,omitempty"`
	ResultData     string  `json:"result_data,omitempty"`
	OpponentUserID FlexInt `json:"opponent_user_id,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
	RecordedAt     string  `json:"recorded_at,omitempty"`
}

// ShootingPractice is one shooting training session.
type ShootingPractice struct {
	ID          int64   `json:"id"`
	AthleteID   int64   `json:"athlete_id"`
	SessionDate string  `json:"session_date,omitempty"`
	WeaponType  string  `json:"weapon_type,omitempty"`
	Distance    FlexInt `json:"distance,omitempty"`
	TargetType  string  `json:"target_type,omitempty"`
	ShotsFired  FlexInt `json:"shots_fired,omitempty"`
	ShotsHit    FlexInt `json:"shots_hit,omitempty"`
	Accuracy    string  `json:"accuracy,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// ArcheryPractice is one archery training session, recorded per arrow.
type ArcheryPractice struct {
	ID             int64   `json:"id"`
	AthleteID      int64   `json:"athlete_id"`
	SessionDate    string  `json:"session_date,omitempty"`
	TargetDistance FlexInt `json:"target_distance,omitempty"`
	EndNumber      FlexInt `json:"end_number,omitempty"`
	ArrowNumber    FlexInt `json:"arrow_number,omitempty"`
	Score          FlexInt `json:"score,omitempty"`
	XCoord         string  `json:"x_coord,omitempty"`
	YCoord         string  `json:"y_coord,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

// BoxingPractice is one boxing sparring round.
type BoxingPractice struct {
	ID                 int64   `json:"id"`
	AthleteID          int64   `json:"athlete_id"`
	RoundNumber        FlexInt `json:"round_number,omitempty"`
	PunchesThrown      FlexInt `json:"punches_thrown,omitempty"`
	PunchesLanded      FlexInt `json:"punches_landed,omitempty"`
	DefenseSuccessRate string  `json:"defense_success_rate,omitempty"`
	FootworkScore      FlexInt `json:"footwork_score,omitempty"`
	SparringPartner    string  `json:"sparring_partner,omitempty"`
	Notes              string  `json:"notes,omitempty"`
	CreatedAt          string  `json:"created_at,omitempty"`
}

// TaekwondoPractice is one taekwondo training session.
type TaekwondoPractice struct {
	ID               int64   `json:"id"`
	AthleteID        int64   `json:"athlete_id"`
	SessionDate      string  `json:"session_date,omitempty"`
	Technique        string  `json:"technique,omitempty"`
	DrillsPracticed  string  `json:"drills_practiced,omitempty"`
	SparringDuration FlexInt `json:"sparring_duration,omitempty"`
	FitnessExercises string  `json:"fitness_exercises,omitempty"`
	Notes            string  `json:"notes,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
}

// Role is a row of the Role catalog.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SessionUser is the raw user envelope returned by /api/login and cached in
// the session store under eprofile_user.
type SessionUser struct {
	UserID     int64  `json:"user_id"`
	Email      string `json:"email"`
	AccessRole string `json:"access_role"`
	AthleteID  *int64 `json:"athlete_id"`
	StaffID    *int64 `json:"staff_id"`
	IsActive   int    `json:"is_active"`
	CreatedAt  string `json:"created_at"`
}

// UIUser is the display-shaped user derived at login and cached under
// eprofile_user_ui. ID is "USR-" plus the zero-padded user id.
type UIUser struct {
	ID        string `json:"id"`
	Avatar    string `json:"avatar,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
}

// Achievement is one tournament placement row shown on the achievement page.
type Achievement struct {
	Group    string `json:"group"`
	Rank     int    `json:"rank"`
	City     string `json:"city"`
	Event    string `json:"event"`
	Detail   string `json:"detail,omitempty"`
	Year     int    `json:"year"`
	Opponent string `json:"opponent,omitempty"`
}
