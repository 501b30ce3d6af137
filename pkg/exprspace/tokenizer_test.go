package exprspace

import (
	"regexp"
	"testing"
)

func TestTokenizerConstruct(t *testing.T) {
	tok := NewTokenizer()
	tok.Register(regexp.MustCompile(`^[0-9]+$`), func(text string, _ *TokenContext) Atom {
		return Sym("num:" + text)
	})

	atom, ok := tok.Construct("42")
	if !ok {
		t.Fatal("expected a match for a numeric token")
	}
	if want := "num:42"; atom.String() != want {
		t.Errorf("Construct(\"42\") = %v, want %v", atom, want)
	}

	if _, ok := tok.Construct("frog"); ok {
		t.Error("a non-numeric token should not match the numeric pattern")
	}
}

func TestTokenizerPriority(t *testing.T) {
	tok := NewTokenizer()
	tok.Register(regexp.MustCompile(`^[a-z]+$`), func(text string, _ *TokenContext) Atom {
		return Sym("first:" + text)
	})
	tok.Register(regexp.MustCompile(`^[a-z]+$`), func(text string, _ *TokenContext) Atom {
		return Sym("second:" + text)
	})

	atom, ok := tok.Construct("frog")
	if !ok {
		t.Fatal("expected a match")
	}
	if want := "second:frog"; atom.String() != want {
		t.Errorf("Construct(\"frog\") = %v, want the most recently registered constructor to win: %v", atom, want)
	}
}

func TestTokenizerUnregister(t *testing.T) {
	tok := NewTokenizer()
	destroyed := false
	ctx := tok.Register(regexp.MustCompile(`^x$`), func(text string, _ *TokenContext) Atom {
		return Sym(text)
	})
	ctx.Destroy = func() { destroyed = true }

	if !tok.Unregister(ctx) {
		t.Fatal("Unregister should find the registration")
	}
	if !destroyed {
		t.Error("Unregister should invoke the registration's destructor")
	}
	if _, ok := tok.Construct("x"); ok {
		t.Error("Construct should no longer match after Unregister")
	}
	if tok.Unregister(ctx) {
		t.Error("Unregister should report false the second time")
	}
}

func TestTokenizerClear(t *testing.T) {
	tok := NewTokenizer()
	destroyedCount := 0
	for i := 0; i < 3; i++ {
		ctx := tok.Register(regexp.MustCompile(`^x$`), func(text string, _ *TokenContext) Atom {
			return Sym(text)
		})
		ctx.Destroy = func() { destroyedCount++ }
	}

	tok.Clear()
	if destroyedCount != 3 {
		t.Errorf("Clear should invoke every destructor, got %d", destroyedCount)
	}
	if _, ok := tok.Construct("x"); ok {
		t.Error("Construct should find nothing after Clear")
	}
}
