package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	CmdCommand     = "cmd"
	StartCommand   = "start"
	WindowsCmdFlag = "/c"
	AndroidAM      = "am"
)

// MaxUniqueAttempts bounds the numbered-suffix search in CreateUnique
const MaxUniqueAttempts = 1000

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("file path is empty")
	}

	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case OSDarwin:
		cmd = exec.Command(OpenCommand, absPath)
	case OSWindows:
		cmd = exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath)
	case OSLinux:
		cmd = exec.Command(XDGOpenCommand, absPath)
	case OSAndroid:
		cmd = exec.Command(AndroidAM, "start", "-a", "android.intent.action.VIEW", "-d", "file://"+absPath, "-t", "image/*")
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	// Check multiple ways to detect Android environment
	isAndroid := runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so

	if isAndroid {
		// External storage so files appear in Gallery
		return "/sdcard/Download", nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, "Downloads"), nil
}

// CreateUnique creates and opens dir/name, or dir/name-N.ext when that name
// is taken. The file is created with O_EXCL, so concurrent callers never
// receive the same path.
func CreateUnique(dir, name string) (*os.File, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return nil, fmt.Errorf("invalid file name: %q", name)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; i <= MaxUniqueAttempts; i++ {
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_RDWR|os.O_CREATE|os.O_EXCL, DefaultFilePermissions)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to create %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}

	return nil, fmt.Errorf("no free file name for %s in %s", name, dir)
}
