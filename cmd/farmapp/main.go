// farmapp is the terminal companion of the ChickHealth mobile app: the same
// backend, the same screens, rendered as subcommands.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"chickhealth-client-go/internal/api"
	"chickhealth-client-go/internal/chat"
	"chickhealth-client-go/internal/config"
	"chickhealth-client-go/internal/logger"
	"chickhealth-client-go/internal/picker"
	"chickhealth-client-go/internal/session"
)

const usage = `farmapp <command> [args]

commands:
  login      -u <email>            sign in and store the token
  register   -n <name> -p <phone>  create an account
  logout                           clear the stored session
  me                               show the current profile
  stats                            personal scan summary
  history                          diagnosis history
  knowledge  [-q <search>]         farming knowledge base
  classify   <image>               diagnose a fecal photo
  detect     <image>               count healthy/sick chickens in a photo
  video      <file>                analyze a flock video (long-running)
  chat                             talk to the AI assistant
`

type app struct {
	cfg     config.Config
	log     *zap.Logger
	client  *api.Client
	session *session.Manager
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "chickhealth-farmapp")
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger setup failed:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	tokenPath := cfg.TokenPath
	if tokenPath == "" {
		tokenPath, err = session.DefaultTokenPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot resolve token path:", err)
			os.Exit(1)
		}
	}

	manager := session.NewManager(session.FileStore{Path: tokenPath}, log)
	client := api.New(cfg.APIOrigin, api.Options{
		Timeout:        time.Duration(cfg.RequestTimeoutSecs) * time.Second,
		VideoTimeout:   time.Duration(cfg.VideoTimeoutSecs) * time.Second,
		Tokens:         manager,
		OnUnauthorized: manager.Invalidate,
		Logger:         log,
	})
	manager.Bind(client)

	a := &app{cfg: cfg, log: log, client: client, session: manager}
	ctx := context.Background()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "login", "register", "logout", "me", "stats", "history",
		"knowledge", "classify", "detect", "video", "chat":
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Session restoration happens once, before any screen is chosen.
	// Protected commands are unreachable without a live session.
	if command != "login" && command != "register" {
		if err := manager.Restore(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "session restore failed:", err)
			os.Exit(1)
		}
		if command != "logout" && !manager.Authenticated() {
			fmt.Fprintln(os.Stderr, "bạn chưa đăng nhập. Hãy chạy: farmapp login -u <email>")
			os.Exit(1)
		}
	}

	var runErr error
	switch command {
	case "login":
		runErr = a.login(ctx, args)
	case "register":
		runErr = a.register(ctx, args)
	case "logout":
		runErr = a.logout()
	case "me":
		runErr = a.me(ctx)
	case "stats":
		runErr = a.stats(ctx)
	case "history":
		runErr = a.history(ctx)
	case "knowledge":
		runErr = a.knowledge(ctx, args)
	case "classify":
		runErr = a.classify(ctx, args)
	case "detect":
		runErr = a.detect(ctx, args)
	case "video":
		runErr = a.video(ctx, args)
	case "chat":
		runErr = a.chatREPL(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("u", "", "email")
	fs.Parse(args)
	if *email == "" {
		return fmt.Errorf("thiếu email: farmapp login -u <email>")
	}

	fmt.Print("Mật khẩu: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	password = strings.TrimRight(password, "\r\n")

	if err := a.session.Login(ctx, *email, password); err != nil {
		a.log.Debug("login failed", zap.Error(err))
		return fmt.Errorf("%s", api.ErrorDetail(err, "Email hoặc mật khẩu không đúng."))
	}
	user := a.session.User()
	fmt.Printf("Xin chào, %s!\n", user.FullName)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("n", "", "full name")
	phone := fs.String("p", "", "phone")
	email := fs.String("u", "", "email (optional)")
	fs.Parse(args)
	if *name == "" || *phone == "" {
		return fmt.Errorf("thiếu thông tin: farmapp register -n <tên> -p <sđt> [-u <email>]")
	}

	fmt.Print("Mật khẩu: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	password = strings.TrimRight(password, "\r\n")

	result, err := a.client.Register(ctx, api.RegisterRequest{
		Email:    *email,
		FullName: *name,
		Phone:    *phone,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("%s", api.ErrorDetail(err, "Đăng ký thất bại. Vui lòng thử lại."))
	}
	fmt.Printf("Đã tạo tài khoản cho %s.\n", result.UserName)
	// A register response carries a token; establish the session with it the
	// same way login does.
	if *email != "" {
		return a.session.Login(ctx, *email, password)
	}
	return nil
}

func (a *app) logout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Println("Đã đăng xuất.")
	return nil
}

func (a *app) chatREPL(ctx context.Context) error {
	transcript := chat.NewTranscript()
	printMessage(transcript.Messages()[0])

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(`(gõ "/exit" để thoát)`)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "/exit" {
			return nil
		}
		if line == "" {
			continue
		}
		reply, err := transcript.Ask(ctx, a.client, line)
		if err != nil {
			a.log.Debug("chat call failed", zap.Error(err))
		}
		printMessage(reply)
	}
}

func printMessage(msg chat.Message) {
	prefix := "Bạn"
	if msg.Sender == chat.SenderAI {
		prefix = "ChickHealth"
	}
	fmt.Printf("[%s] %s: %s\n", msg.Timestamp.Format("15:04"), prefix, msg.Text)
	if msg.Usage != nil {
		fmt.Printf("       (tokens: %d)\n", msg.Usage.TotalTokens)
	}
}

func openImage(args []string, allowVideo bool) (picker.Image, error) {
	if len(args) < 1 {
		return picker.Image{}, fmt.Errorf("thiếu đường dẫn tệp")
	}
	return picker.FileSource{Path: args[0], AllowVideo: allowVideo}.Capture()
}
