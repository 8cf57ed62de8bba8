package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestCondition_AndDoesNotAlias(t *testing.T) {
	base := Condition{}.And("title", "A")
	left := base.And("author", "u1")
	right := base.And("author", "u2")

	if len(base) != 1 {
		t.Fatalf("base len = %d; want 1", len(base))
	}
	if left[1].Value != "u1" {
		t.Errorf("left[1].Value = %v; want u1", left[1].Value)
	}
	if right[1].Value != "u2" {
		t.Errorf("right[1].Value = %v; want u2", right[1].Value)
	}
}

func TestCondition_Empty(t *testing.T) {
	var c Condition
	if !c.Empty() {
		t.Error("zero Condition should be empty")
	}
	if c.And("email", "a@example.com").Empty() {
		t.Error("condition with one constraint should not be empty")
	}
}

func TestVoteJSON_FieldNames(t *testing.T) {
	post := uuid.MustParse("2f1c7a52-8f5e-4c1e-9d6b-3a7c4d1e0b11")
	voter := uuid.MustParse("9a0b8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d")

	raw, err := json.Marshal(Vote{Post: post, Voter: voter, Positive: true})
	if err != nil {
		t.Fatalf("marshal vote: %v", err)
	}
	body := string(raw)
	for _, want := range []string{
		`"post":"` + post.String() + `"`,
		`"voter":"` + voter.String() + `"`,
		`"positive":true`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("json %s should contain %s", body, want)
		}
	}
}

func TestModels_MigrationOrder(t *testing.T) {
	models := Models()
	if len(models) != 4 {
		t.Fatalf("Models() returned %d models; want 4", len(models))
	}
	if _, ok := models[0].(*User); !ok {
		t.Errorf("first model = %T; want *User so posts can reference users", models[0])
	}
}
