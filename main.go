package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/example/examdesk/internal/codec"
	"github.com/example/examdesk/internal/config"
	"github.com/example/examdesk/internal/database"
	"github.com/example/examdesk/internal/excel"
	"github.com/example/examdesk/internal/logger"
	"github.com/example/examdesk/internal/repository"
	"github.com/example/examdesk/internal/scheduler"
	"github.com/example/examdesk/pkg/models"
)

var (
	app     = kingpin.New("examdesk", "Exam management data store")
	envFile = app.Flag("env-file", "Optional .env file with EXAMDESK_* settings").Default(".env").String()

	initCmd = app.Command("init", "Create the empty document and session entries")

	addUserCmd        = app.Command("add-user", "Register an account")
	addUserRole       = addUserCmd.Flag("role", "student, examiner or admin").Required().String()
	addUserID         = addUserCmd.Flag("id", "Account id").Required().String()
	addUserPassword   = addUserCmd.Flag("password", "Account password").Required().String()
	addUserName       = addUserCmd.Flag("name", "Display name").String()
	addUserEmail      = addUserCmd.Flag("email", "Email address").String()
	addUserDepartment = addUserCmd.Flag("department", "Department").String()

	loginCmd      = app.Command("login", "Start a session")
	loginID       = loginCmd.Flag("id", "Account id").Required().String()
	loginPassword = loginCmd.Flag("password", "Account password").Required().String()

	logoutCmd = app.Command("logout", "End the current session")

	statsCmd = app.Command("stats", "Print system statistics")

	examinerStatsCmd = app.Command("examiner-stats", "Print statistics for an examiner")
	examinerStatsID  = examinerStatsCmd.Flag("id", "Examiner id").Required().String()

	resultsCmd     = app.Command("results", "Print results, optionally for one student")
	resultsStudent = resultsCmd.Flag("student", "Student id").String()

	importQuestionsCmd       = app.Command("import-questions", "Import questions from an xlsx or csv file")
	importQuestionsFile      = importQuestionsCmd.Arg("file", "Source file").Required().String()
	importQuestionsCreatedBy = importQuestionsCmd.Flag("created-by", "Examiner id stamped on the questions").String()

	importUsersCmd  = app.Command("import-users", "Import accounts from an xlsx or csv file")
	importUsersFile = importUsersCmd.Arg("file", "Source file").Required().String()
	importUsersRole = importUsersCmd.Flag("role", "student, examiner or admin").Default("student").String()

	exportResultsCmd  = app.Command("export-results", "Export results to an xlsx or csv file")
	exportResultsFile = exportResultsCmd.Arg("file", "Destination file").Required().String()

	dumpCmd    = app.Command("dump", "Write the whole document to a file or stdout")
	dumpFile   = dumpCmd.Arg("file", "Destination file, - for stdout").Default("-").String()
	dumpFormat = dumpCmd.Flag("format", "json or yaml").Default("json").String()

	restoreCmd  = app.Command("restore", "Replace the document with a snapshot")
	restoreFile = restoreCmd.Arg("file", "Snapshot file (.json, .yaml)").Required().String()

	backupCmd  = app.Command("backup", "Write periodic backups until interrupted")
	backupOnce = backupCmd.Flag("once", "Write a single backup and exit").Bool()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*envFile)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg.LogLevel)

	store, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	repo, err := repository.New(store,
		repository.WithLogger(log),
		repository.WithDefaultPassMarks(cfg.DefaultPassMarks),
	)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	if err := run(cmd, cfg, repo, log); err != nil {
		store.Close()
		log.Fatal(err)
	}
}

func run(cmd string, cfg *config.Config, repo *repository.Repository, log *logrus.Logger) error {
	switch cmd {
	case initCmd.FullCommand():
		log.Info("Store initialized")

	case addUserCmd.FullCommand():
		role, ok := models.ParseRole(*addUserRole)
		if !ok {
			return fmt.Errorf("unknown role %q", *addUserRole)
		}
		u := &models.User{
			ID:         *addUserID,
			Password:   *addUserPassword,
			Name:       *addUserName,
			Email:      *addUserEmail,
			Department: *addUserDepartment,
		}
		if !repo.AddUser(u, role) {
			return fmt.Errorf("user %s was not added", u.ID)
		}
		log.Infof("Added %s %s", role, u.ID)

	case loginCmd.FullCommand():
		u := repo.Login(*loginID, *loginPassword)
		if u == nil {
			return fmt.Errorf("invalid credentials")
		}
		log.Infof("Logged in as %s (%s)", u.ID, repo.GetUserType(u.ID))

	case logoutCmd.FullCommand():
		if !repo.Logout() {
			return fmt.Errorf("failed to end session")
		}

	case statsCmd.FullCommand():
		stats := repo.GetSystemStats()
		if stats == nil {
			return fmt.Errorf("no document in store")
		}
		return printJSON(os.Stdout, stats)

	case examinerStatsCmd.FullCommand():
		return printJSON(os.Stdout, repo.GetExaminerStats(*examinerStatsID))

	case resultsCmd.FullCommand():
		if *resultsStudent != "" {
			return printJSON(os.Stdout, repo.GetStudentResults(*resultsStudent))
		}
		return printJSON(os.Stdout, repo.AllResults())

	case importQuestionsCmd.FullCommand():
		ic := excel.DefaultQuestionImportConfig()
		ic.FilePath = *importQuestionsFile
		ic.CreatedBy = *importQuestionsCreatedBy
		result, err := excel.ImportQuestions(ic, repo)
		if err != nil {
			return err
		}
		logImport(log, result)

	case importUsersCmd.FullCommand():
		ic := excel.DefaultUserImportConfig(models.Role(*importUsersRole))
		ic.FilePath = *importUsersFile
		result, err := excel.ImportUsers(ic, repo)
		if err != nil {
			return err
		}
		logImport(log, result)

	case exportResultsCmd.FullCommand():
		results := repo.AllResults()
		if err := excel.ExportResults(*exportResultsFile, results); err != nil {
			return err
		}
		log.Infof("Exported %d results to %s", len(results), *exportResultsFile)

	case dumpCmd.FullCommand():
		return dump(repo, *dumpFile, *dumpFormat)

	case restoreCmd.FullCommand():
		return restore(repo, *restoreFile)

	case backupCmd.FullCommand():
		return backup(cfg, repo, log)
	}
	return nil
}

func logImport(log *logrus.Logger, result *excel.ImportResult) {
	log.Infof("Processed %d rows: %d created, %d skipped", result.TotalProcessed, result.Created, result.Skipped)
	for _, e := range result.Errors {
		log.Warn(e)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func dump(repo *repository.Repository, path, format string) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}
	doc := repo.Snapshot()
	if doc == nil {
		return fmt.Errorf("no document in store")
	}

	if path == "-" {
		return c.Encode(doc, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Encode(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func restore(repo *repository.Repository, path string) error {
	c, err := codec.ForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := c.Decode(f)
	if err != nil {
		return err
	}
	if !repo.Restore(doc) {
		return fmt.Errorf("failed to restore %s", path)
	}
	return nil
}

func backup(cfg *config.Config, repo *repository.Repository, log *logrus.Logger) error {
	c, err := codec.ForFormat(cfg.BackupFormat)
	if err != nil {
		return err
	}
	s := scheduler.New(repo, c, cfg.BackupDir, log)

	if *backupOnce {
		path, err := s.RunBackup()
		if err != nil {
			return err
		}
		log.Infof("Backup written to %s", path)
		return nil
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := s.Start(cfg.BackupInterval); err != nil {
		return err
	}
	log.Info("Backup scheduler running. Press Ctrl+C to stop.")

	sig := <-sigChan
	log.Infof("Received signal: %v", sig)
	s.Stop()
	log.Info("Backup scheduler stopped")
	return nil
}
