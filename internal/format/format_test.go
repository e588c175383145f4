package format

import (
	"testing"

	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/lexer"
	"isl/internal/limits"
	"isl/internal/parser"
	"isl/internal/source"
)

func parseDomain(t *testing.T, src string) *ast.Domain {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.isl", []byte(src))
	bag := diag.NewBag(100)
	rep := &diag.BagReporter{Bag: bag}
	toks, limitErr := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: rep, Limits: limits.Default()})
	if limitErr != nil {
		t.Fatalf("limit error: %v", limitErr)
	}
	dom := parser.Parse(toks, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	if dom == nil {
		t.Fatal("nil domain")
	}
	return dom
}

func roundTrip(t *testing.T, src string) {
	t.Helper()
	first := parseDomain(t, src)
	rendered := Unparse(first, Options{})
	second := parseDomain(t, rendered)
	if !ast.EqualDomain(first, second) {
		t.Fatalf("round trip changed the tree\nsource:\n%s\nrendered:\n%s", src, rendered)
	}
	// Unparse of the reparse is stable.
	if again := Unparse(second, Options{}); again != rendered {
		t.Fatalf("unparse not stable\nfirst:\n%s\nsecond:\n%s", rendered, again)
	}
}

func TestRoundTripSmall(t *testing.T) {
	roundTrip(t, `domain Small {
  version: "1.0"
  entity E {
    id: UUID
    name: String = "anon"
  }
}`)
}

func TestRoundTripFull(t *testing.T) {
	roundTrip(t, `domain Payments {
  version: "1.0.0"
  owner: "payments-team"
  use common.types as ct
  import "shared/errors.isl"
  type Email = String { pattern: /.+@.+/, maxLength: 254 }
  enum Currency { USD, EUR, GBP }
  entity Account {
    id: UUID
    email: Email @unique
    balance: Money = 0
    invariants {
      non_negative: balance >= 0
    }
    lifecycle {
      pending -> active on verify
      active -> closed
    }
  }
  behavior Charge {
    input {
      account_id: UUID
      amount: Money
    }
    output {
      success: Receipt
      errors { InsufficientFunds @retryable, AccountClosed }
    }
    preconditions {
      amount > 0
    }
    postconditions {
      success {
        account.balance == old(account.balance) - input.amount
      }
      any_error {
        account.balance == old(account.balance)
      }
    }
    temporal {
      eventually receipt.delivered within 5.minutes at p99
    }
    security {
      requires_role: "accountant"
    }
  }
  invariants {
    conservation: sum(accounts, a => a.balance) >= 0
  }
  policy Retention {
    when account.closed_at != null
    then archive(account) within 30.days
  }
  view AccountSummary {
    id: UUID
  }
  scenario Happy {
    given account.balance == 100
    when Charge(account_id: account.id, amount: 40)
    then account.balance == 60
  }
  chaos Flap {
    inject network_partition
    expect eventually system.recovered within 10.minutes
  }
  api Public {
    post "/accounts/{id}/charge" -> Charge
  }
  storage Primary {
    Account -> "accounts"
    index: account_id
  }
  workflow Settle {
    step capture -> Charge
  }
  event Charged {
    amount: Money
  }
  handler OnCharged {
    on: Charged
    calls: Notify
  }
  screen Page {
    shows: AccountSummary
    action charge -> Charge
  }
  config {
    max_retries: 3
  }
}`)
}

func TestRoundTripExpressions(t *testing.T) {
	cases := []string{
		"a or b and c",
		"a == b implies c",
		"(a or b) implies c",
		"not a and !b",
		"a < b == c < d",
		"x + y * z % w",
		`status in ["a", "b"]`,
		"items[0].price > old(items[0].price)",
		"all(accounts, a => a.balance >= 0)",
		"count(xs, x => x.ok) == 0",
		"a > 0 ? a : -a",
		"result.total == input.amount",
		`tags == {"env": "prod"}`,
		"x == 200ms",
		"x == 1.5s",
		"matches(email, /.+@.+/)",
	}
	for _, expr := range cases {
		t.Run(expr, func(t *testing.T) {
			roundTrip(t, `domain D { version: "1.0" invariants { `+expr+` } }`)
		})
	}
}

func TestRoundTripTypes(t *testing.T) {
	roundTrip(t, `domain D {
  version: "1.0"
  type A = Map<String, List<Money?>>
  type B = Int | String
  type C = String { pattern: /x+/, maxLength: 10 }
  type D2 = { lat: Float, lon: Float }
  type E = Result<Receipt, ChargeError>
}`)
}

// unknownExpr stands in for a node kind the printer has never seen.
type unknownExpr struct{ *ast.IdentExpr }

func TestUnhandledExpressionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unhandled expression kind")
		}
	}()
	p := &printer{}
	p.exprStr(unknownExpr{&ast.IdentExpr{Name: "x"}})
}

func TestUnparseNil(t *testing.T) {
	if got := Unparse(nil, Options{}); got != "" {
		t.Errorf("Unparse(nil) = %q", got)
	}
}

func TestParenthesizationPreservesShape(t *testing.T) {
	// The printed form must re-group exactly, not just reparse cleanly.
	left := parseDomain(t, `domain D { version: "1.0" invariants { (a or b) implies c } }`)
	right := parseDomain(t, `domain D { version: "1.0" invariants { a or (b implies c) } }`)
	if ast.EqualDomain(left, right) {
		t.Fatal("distinct groupings compare equal, the equality helper is broken")
	}
	rendered := Unparse(left, Options{})
	reparsed := parseDomain(t, rendered)
	if !ast.EqualDomain(left, reparsed) {
		t.Fatalf("grouping lost in rendering:\n%s", rendered)
	}
}
