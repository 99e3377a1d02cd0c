package shellcmd

import (
	"reflect"
	"testing"
)

type fakeEnv struct {
	selectedPath string
	flagged      []string
}

func (e fakeEnv) SelectedPath() string      { return e.selectedPath }
func (e fakeEnv) SelectedFilename() string  { return "a b.txt" }
func (e fakeEnv) SelectedExtension() string { return "txt" }
func (e fakeEnv) CurrentDirectory() string  { return "/home/u" }
func (e fakeEnv) FlaggedPaths() []string    { return e.flagged }

func TestParseFilenameExpansionQuotesEmbeddedSpace(t *testing.T) {
	env := fakeEnv{selectedPath: "/home/u/a b.txt"}
	got, err := Parse("echo %n | wc -l", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"sh", "-c", `echo "a b.txt" | wc -l`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %v, want %v", got, want)
	}
}

func TestParseFlaggedExpansionListsEveryPath(t *testing.T) {
	env := fakeEnv{flagged: []string{"/x", "/y"}}
	got, err := Parse("ls %f", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"sh", "-c", "ls /x /y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %v, want %v", got, want)
	}
}

func TestParseUnknownExpansionErrors(t *testing.T) {
	if _, err := Parse("echo %q", fakeEnv{}); err == nil {
		t.Fatal("expected an error for an unknown expansion")
	}
}

func TestParseTermTokenMustBeFirst(t *testing.T) {
	if _, err := Parse("echo %t", fakeEnv{}); err == nil {
		t.Fatal("expected an error when %t is not the first token")
	}
	got, err := Parse("%t vim %s", fakeEnv{selectedPath: "/a"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{SameWindowToken, " vim ", "/a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %v, want %v", got, want)
	}
}

func TestParseSudoRejoinsAndSplitsOnWhitespace(t *testing.T) {
	env := fakeEnv{selectedPath: "/a"}
	got, err := Parse("sudo rm %s", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"sudo", "rm", "/a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %v, want %v", got, want)
	}
}

func TestParseStringLiteralKeepsQuotesAndSpacing(t *testing.T) {
	got, err := Parse(`echo "hello world"`, fakeEnv{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"sh", "-c", `echo "hello world"`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %v, want %v", got, want)
	}
}

func TestParseEmptyCommandErrors(t *testing.T) {
	if _, err := Parse("", fakeEnv{}); err == nil {
		t.Fatal("expected an error for an empty command")
	}
}
