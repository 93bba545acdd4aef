// Package main is the terminal client for the E-Profile dashboard API.
// It keeps a local session file and exposes the dashboard's list pages
// as REPL commands.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vietsport/eprofile/internal/client/api"
	"github.com/vietsport/eprofile/internal/client/guard"
	"github.com/vietsport/eprofile/internal/client/service"
	"github.com/vietsport/eprofile/internal/client/session"
	"github.com/vietsport/eprofile/internal/config"
	"github.com/vietsport/eprofile/internal/health"
	"github.com/vietsport/eprofile/internal/listview"
	"github.com/vietsport/eprofile/internal/logger"
	"github.com/vietsport/eprofile/internal/models"
	"github.com/vietsport/eprofile/internal/profile"
)

var (
	version   string
	buildDate string
)

// app bundles the session and the per-resource services the REPL uses.
type app struct {
	sess         *session.Store
	auth         *service.Auth
	users        *service.Users
	athletes     *service.Athletes
	competitions *service.Competitions
	results      *service.Results
	practices    *service.Practices
	roles        *service.Roles
}

func main() {
	var (
		baseURL     string
		sessionFile string
		showVer     bool
	)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	flag.StringVar(&baseURL, "url", cfg.APIBaseURL, "API base URL")
	flag.StringVar(&sessionFile, "session", cfg.SessionFile, "path to the session file")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("E-Profile Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	zapLog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLog.Sync() }()

	sess, err := session.Open(sessionFile)
	if err != nil {
		log.Fatal(err)
	}

	client := api.New(baseURL, sess, zapLog)
	a := &app{
		sess:         sess,
		auth:         service.NewAuth(client, sess),
		users:        service.NewUsers(client),
		athletes:     service.NewAthletes(client),
		competitions: service.NewCompetitions(client),
		results:      service.NewResults(client),
		practices:    service.NewPractices(client),
		roles:        service.NewRoles(client),
	}

	a.repl()
}

// repl runs the interactive shell loop.
func (a *app) repl() {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("eprofile> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		a.dispatch(ctx, args)
		cancel()

		if args[0] == "exit" {
			return
		}
	}
}

func (a *app) dispatch(ctx context.Context, args []string) {
	switch args[0] {
	case "help":
		printHelp()
	case "login":
		a.cmdLogin(ctx, args[1:])
	case "logout":
		a.cmdLogout(ctx)
	case "register":
		a.cmdRegister(ctx, args[1:])
	case "whoami":
		a.cmdWhoami()
	case "athletes":
		a.cmdUsersByRole(ctx, profile.RoleAthlete, args[1:])
	case "coaches":
		a.cmdUsersByRole(ctx, profile.RoleCoach, args[1:])
	case "competitions":
		a.cmdCompetitions(ctx, args[1:])
	case "results":
		a.cmdResults(ctx, args[1:])
	case "achievements":
		a.cmdAchievements(ctx, args[1:])
	case "practices":
		a.cmdPractices(ctx, args[1:])
	case "roles":
		a.cmdRoles(ctx)
	case "health":
		cmdHealth(args[1:])
	case "get":
		a.cmdGet(ctx, args[1:])
	case "add":
		a.cmdAdd(ctx, args[1:])
	case "delete":
		a.cmdDelete(ctx, args[1:])
	case "exit":
		fmt.Println("Tạm biệt")
	default:
		fmt.Println("Lệnh không hợp lệ. Gõ 'help' để xem danh sách lệnh.")
	}
}

func printHelp() {
	fmt.Println(`Các lệnh:
  login <email> <mật khẩu>         đăng nhập
  logout                           đăng xuất
  register <email> <mật khẩu>      đăng ký tài khoản
  whoami                           người dùng hiện tại
  athletes [search=] [page=] [size=]
  coaches  [search=] [page=] [size=]
  competitions [sport=] [search=] [page=] [size=]
  results   <môn> [athlete=] [sort=]
  achievements <môn> [athlete=] [search=] [opponent=] [group=] [sort=mới-nhất|cũ-nhất] [rank=best|worst]
  practices <môn> [athlete=] [page=] [size=]
  roles
  health [spo2=] [bpm=] [bp=] [temp=] [glucose=] [sleep=] [steps=] [hrv=] [ecg=] [uric=]
  get user <id> | get result <môn> <id> | get role <id>
  add competition <môn> <tên> [thành phố]
  add role <tên>
  delete competition <id> | delete result <môn> <id> |
  delete practice <môn> <id> | delete role <id>
  exit`)
}

// requireAuth gates data commands behind the auth guard the way the
// dashboard gates its pages.
func (a *app) requireAuth() bool {
	d := guard.NewAuth(guard.ProbeStore(a.sess)).Check(guard.DashboardPath)
	switch d.Action {
	case guard.ActionRedirect:
		fmt.Println("Vui lòng đăng nhập:", d.Target)
		return false
	case guard.ActionError:
		fmt.Println("Lỗi phiên đăng nhập:", d.Err)
		return false
	}
	return true
}

func (a *app) cmdLogin(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Cách dùng: login <email> <mật khẩu>")
		return
	}

	if d := guard.NewGuest(guard.ProbeStore(a.sess)).Check(""); d.Action == guard.ActionRedirect {
		fmt.Println("Đã đăng nhập, chuyển đến", d.Target)
		return
	}

	user, err := a.auth.SignIn(ctx, args[0], args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Xin chào %s (%s)\n", user.Email, user.AccessRole)
}

func (a *app) cmdLogout(ctx context.Context) {
	if err := a.auth.SignOut(ctx); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Đã đăng xuất")
}

func (a *app) cmdRegister(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Cách dùng: register <email> <mật khẩu>")
		return
	}

	id, err := a.auth.SignUp(ctx, service.RegisterParams{Email: args[0], Password: args[1]})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Đã đăng ký, mã người dùng:", id)
}

func (a *app) cmdWhoami() {
	user := a.sess.User()
	if user == nil {
		fmt.Println("Chưa đăng nhập")
		return
	}
	printJSON(user)
	if ui := a.sess.UIUser(); ui != nil {
		fmt.Printf("Hiển thị: %s (%s %s)\n", ui.ID, ui.FirstName, ui.LastName)
	}
}

func (a *app) cmdUsersByRole(ctx context.Context, role profile.Role, args []string) {
	if !a.requireAuth() {
		return
	}
	opts := argMap(args)

	var (
		rows []models.User
		err  error
	)
	if role == profile.RoleCoach {
		rows, err = a.users.ListCoaches(ctx)
	} else {
		rows, err = a.users.ListAthletes(ctx)
	}
	if err != nil {
		fmt.Println(err)
		return
	}

	rows = listview.Search(rows, opts["search"], func(u models.User) []string {
		return []string{profile.FullName(u.LastName, u.FirstName, u.Email), u.Email, u.Sport}
	})
	total := len(rows)
	rows = listview.Paginate(rows, optInt(opts, "page", 0), optInt(opts, "size", listview.DefaultRowsPerPage))

	for _, u := range rows {
		age := "-"
		if n, ok := profile.CalcAge(u.Birthday, time.Now()); ok {
			age = strconv.Itoa(n)
		}
		fmt.Printf("%4d  %-30s  %-12s  %-6s  %s\n",
			u.ID,
			profile.FullName(u.LastName, u.FirstName, u.Email),
			u.Sport,
			age,
			profile.NormalizeGender(u.Gender),
		)
	}
	fmt.Printf("(%d/%d %s)\n", len(rows), total, role)
}

func (a *app) cmdCompetitions(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	opts := argMap(args)

	var (
		rows []models.Competition
		err  error
	)
	if opts["sport"] != "" {
		rows, err = a.competitions.ListBySport(ctx, profile.NormalizeSport(opts["sport"]))
	} else {
		rows, err = a.competitions.List(ctx, nil, "id-desc")
	}
	if err != nil {
		fmt.Println(err)
		return
	}

	rows = listview.Search(rows, opts["search"], func(c models.Competition) []string {
		return []string{c.CompetitionName, c.City, c.Country}
	})
	total := len(rows)
	rows = listview.Paginate(rows, optInt(opts, "page", 0), optInt(opts, "size", listview.DefaultRowsPerPage))

	for _, c := range rows {
		fmt.Printf("%4d  %-12s  %-36s  %s, %s  %s → %s\n",
			c.ID, c.SportType, c.CompetitionName, c.City, c.Country, c.StartDate, c.EndDate)
	}
	fmt.Printf("(%d/%d)\n", len(rows), total)
}

func (a *app) cmdResults(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) < 1 {
		fmt.Println("Cách dùng: results <môn> [athlete=] [sort=]")
		return
	}
	sport := profile.NormalizeSport(args[0])
	opts := argMap(args[1:])

	orderby := opts["sort"]
	if orderby == "" {
		orderby = "id-desc"
	}

	var (
		rows []models.CompetitionResult
		err  error
	)
	if opts["athlete"] != "" {
		rows, err = a.results.ListByAthlete(ctx, sport, int64(optInt(opts, "athlete", 0)), orderby)
	} else {
		rows, err = a.results.List(ctx, sport, nil, orderby)
	}
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, r := range rows {
		fmt.Printf("%4d  athlete=%-4d comp=%-4d hạng=%-3d %-8s %s\n",
			r.ID, r.AthleteID, r.CompetitionID.Int(), r.FinalRank.Int(), r.MedalWon, r.Notes)
	}
	fmt.Printf("(%d)\n", len(rows))
}

// cmdAchievements renders the achievement board: per-sport result rows joined
// with the competition catalog, run through the page pipeline.
func (a *app) cmdAchievements(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) < 1 {
		fmt.Println("Cách dùng: achievements <môn> [athlete=] [search=] [opponent=] [group=] [sort=] [rank=]")
		return
	}
	sport := profile.NormalizeSport(args[0])
	opts := argMap(args[1:])

	var (
		results []models.CompetitionResult
		err     error
	)
	if opts["athlete"] != "" {
		results, err = a.results.ListByAthlete(ctx, sport, int64(optInt(opts, "athlete", 0)), "id-desc")
	} else {
		results, err = a.results.List(ctx, sport, nil, "id-desc")
	}
	if err != nil {
		fmt.Println(err)
		return
	}

	comps, err := a.competitions.List(ctx, nil, "id-asc")
	if err != nil {
		fmt.Println(err)
		return
	}

	opponents := make(map[int64]string)
	for _, r := range results {
		id := r.OpponentUserID.Int()
		if id == 0 {
			continue
		}
		if _, seen := opponents[id]; seen {
			continue
		}
		if u, resolveErr := a.users.Resolve(ctx, id); resolveErr == nil {
			opponents[id] = profile.FullName(u.LastName, u.FirstName, u.Email)
		}
	}

	rows := listview.ApplyAchievements(
		listview.BuildAchievements(results, comps, opponents),
		listview.AchievementQuery{
			Search:   opts["search"],
			Opponent: opts["opponent"],
			Group:    strings.ToUpper(opts["group"]),
			Sort:     listview.SortMode(opts["sort"]),
			Rank:     listview.RankSort(opts["rank"]),
		},
	)
	for _, row := range rows {
		fmt.Printf("%d  hạng=%-3d %-28s %-16s %-26s %s\n",
			row.Year, row.Rank, row.Group, row.City, row.Event, row.Opponent)
	}
	fmt.Printf("(%d thành tích)\n", len(rows))
}

func (a *app) cmdPractices(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) < 1 {
		fmt.Println("Cách dùng: practices <môn> [athlete=] [page=] [size=]")
		return
	}
	sport := profile.NormalizeSport(args[0])
	opts := argMap(args[1:])
	page := optInt(opts, "page", 0)
	size := optInt(opts, "size", listview.DefaultRowsPerPage)
	athleteID := int64(optInt(opts, "athlete", 0))

	var err error
	switch sport {
	case profile.SportShooting:
		err = listPracticePage(ctx, athleteID, page, size, a.practices.ListShooting, a.practices.ListShootingByAthlete)
	case profile.SportArchery:
		err = listPracticePage(ctx, athleteID, page, size, a.practices.ListArchery, a.practices.ListArcheryByAthlete)
	case profile.SportBoxing:
		err = listPracticePage(ctx, athleteID, page, size, a.practices.ListBoxing, a.practices.ListBoxingByAthlete)
	case profile.SportTaekwondo:
		err = listPracticePage(ctx, athleteID, page, size, a.practices.ListTaekwondo, a.practices.ListTaekwondoByAthlete)
	default:
		fmt.Println("Môn thể thao không hợp lệ:", args[0])
		return
	}
	if err != nil {
		fmt.Println(err)
	}
}

// listPracticePage fetches one sport's sessions, paginates and prints them.
func listPracticePage[T any](
	ctx context.Context,
	athleteID int64,
	page, size int,
	listAll func(context.Context, service.Filters, string) ([]T, error),
	listByAthlete func(context.Context, int64, string) ([]T, error),
) error {
	var (
		rows []T
		err  error
	)
	if athleteID > 0 {
		rows, err = listByAthlete(ctx, athleteID, "id-desc")
	} else {
		rows, err = listAll(ctx, nil, "id-desc")
	}
	if err != nil {
		return err
	}

	total := len(rows)
	for _, row := range listview.Paginate(rows, page, size) {
		printJSON(row)
	}
	fmt.Printf("(%d buổi tập)\n", total)
	return nil
}

func (a *app) cmdRoles(ctx context.Context) {
	if !a.requireAuth() {
		return
	}
	rows, err := a.roles.List(ctx, nil, "id-asc")
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range rows {
		fmt.Printf("%4d  %s\n", r.ID, r.Name)
	}
}

// cmdHealth evaluates the given vitals against the dashboard thresholds.
func cmdHealth(args []string) {
	opts := argMap(args)
	if len(opts) == 0 {
		fmt.Println("Cách dùng: health spo2=98 bpm=72 bp=118/76 temp=36.6 glucose=90 sleep=7h30m")
		return
	}

	labels := map[string]string{
		"spo2":    "SpO2",
		"bpm":     "Nhịp tim",
		"bp":      "Huyết áp",
		"temp":    "Nhiệt độ",
		"glucose": "Đường huyết",
		"sleep":   "Giấc ngủ",
		"steps":   "Số bước",
		"hrv":     "HRV",
		"ecg":     "Điện tâm đồ",
		"uric":    "Axit uric",
	}
	for _, key := range []string{"spo2", "bpm", "bp", "temp", "glucose", "sleep", "steps", "hrv", "ecg", "uric"} {
		value, ok := opts[key]
		if !ok {
			continue
		}
		status := health.Evaluate(health.Metric{Key: key, Value: value})
		fmt.Printf("%-12s %-10s %s\n", labels[key], value, status.Label())
	}
}

func (a *app) cmdGet(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) < 2 {
		fmt.Println("Cách dùng: get user <id> | get result <môn> <id> | get role <id>")
		return
	}

	switch args[0] {
	case "user":
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Println("Mã không hợp lệ:", args[1])
			return
		}
		user, err := a.users.Resolve(ctx, id)
		if err != nil {
			fmt.Println(err)
			return
		}
		printJSON(user)
	case "result":
		if len(args) < 3 {
			fmt.Println("Cách dùng: get result <môn> <id>")
			return
		}
		id, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			fmt.Println("Mã không hợp lệ:", args[2])
			return
		}
		result, err := a.results.GetByID(ctx, profile.NormalizeSport(args[1]), id)
		if err != nil {
			fmt.Println(err)
			return
		}
		printJSON(result)
	case "role":
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Println("Mã không hợp lệ:", args[1])
			return
		}
		role, err := a.roles.GetByID(ctx, id)
		if err != nil {
			fmt.Println(err)
			return
		}
		printJSON(role)
	default:
		fmt.Println("Không hỗ trợ: get", args[0])
	}
}

func (a *app) cmdAdd(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) < 2 {
		fmt.Println("Cách dùng: add competition <môn> <tên> [thành phố] | add role <tên>")
		return
	}

	switch args[0] {
	case "competition":
		if len(args) < 3 {
			fmt.Println("Cách dùng: add competition <môn> <tên> [thành phố]")
			return
		}
		payload := models.Competition{
			SportType:       profile.SportLabelVN(profile.NormalizeSport(args[1])),
			CompetitionName: args[2],
		}
		if len(args) > 3 {
			payload.City = strings.Join(args[3:], " ")
		}
		created, err := a.competitions.Create(ctx, payload)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("Đã tạo giải đấu, mã:", created.ID)
	case "role":
		created, err := a.roles.Create(ctx, strings.Join(args[1:], " "))
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("Đã tạo vai trò, mã:", created.ID)
	default:
		fmt.Println("Không hỗ trợ: add", args[0])
	}
}

func (a *app) cmdDelete(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) < 2 {
		fmt.Println("Cách dùng: delete competition <id> | delete result <môn> <id> | delete practice <môn> <id> | delete role <id>")
		return
	}

	var (
		ok      bool
		message string
		err     error
	)
	switch args[0] {
	case "competition":
		id, parseErr := strconv.ParseInt(args[1], 10, 64)
		if parseErr != nil {
			fmt.Println("Mã không hợp lệ:", args[1])
			return
		}
		ok, message, err = a.competitions.Delete(ctx, id)
	case "result", "practice":
		if len(args) < 3 {
			fmt.Println("Cách dùng: delete", args[0], "<môn> <id>")
			return
		}
		id, parseErr := strconv.ParseInt(args[2], 10, 64)
		if parseErr != nil {
			fmt.Println("Mã không hợp lệ:", args[2])
			return
		}
		sport := profile.NormalizeSport(args[1])
		if args[0] == "result" {
			ok, message, err = a.results.Delete(ctx, sport, id)
		} else {
			ok, message, err = a.practices.Delete(ctx, sport, id)
		}
	case "role":
		id, parseErr := strconv.ParseInt(args[1], 10, 64)
		if parseErr != nil {
			fmt.Println("Mã không hợp lệ:", args[1])
			return
		}
		ok, message, err = a.roles.Delete(ctx, id)
	default:
		fmt.Println("Không hỗ trợ: delete", args[0])
		return
	}

	if err != nil {
		fmt.Println(err)
		return
	}
	if message == "" {
		message = "Đã xoá"
	}
	if ok {
		fmt.Println(message)
	} else {
		fmt.Println("Xoá thất bại:", message)
	}
}

// argMap parses key=value arguments; bare words are ignored.
func argMap(args []string) map[string]string {
	out := make(map[string]string)
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if found && value != "" {
			out[key] = value
		}
	}
	return out
}

func optInt(opts map[string]string, key string, fallback int) int {
	if raw, ok := opts[key]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}
