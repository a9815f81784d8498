package notifier

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/Strob0t/gchat-notify/internal/domain/notification"
)

type fakeNotifier struct{ name string }

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Dispatch(context.Context, notification.Request) notification.Result {
	return notification.Succeeded(200)
}

func TestRegisterAndNew(t *testing.T) {
	Register("fake-registry-test", func(cfg map[string]string) (Notifier, error) {
		return &fakeNotifier{name: cfg["name"]}, nil
	})

	n, err := New("fake-registry-test", map[string]string{"name": "configured"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Name() != "configured" {
		t.Fatalf("expected factory config to reach notifier, got %q", n.Name())
	}
	if !slices.Contains(Available(), "fake-registry-test") {
		t.Fatalf("expected fake-registry-test in %v", Available())
	}
}

func TestNewUnknownListsAvailable(t *testing.T) {
	Register("fake-listed-test", func(map[string]string) (Notifier, error) { return &fakeNotifier{}, nil })

	_, err := New("does-not-exist", nil)
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "fake-listed-test") {
		t.Fatalf("error should list registered providers, got %q", err.Error())
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("fake-dup-test", func(map[string]string) (Notifier, error) { return &fakeNotifier{}, nil })
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register("fake-dup-test", func(map[string]string) (Notifier, error) { return &fakeNotifier{}, nil })
}
