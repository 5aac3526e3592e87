package token

import (
	"testing"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		lexeme    string
		want      Token
	}{
		{
			name:      "create LPA token",
			tokenType: LPA,
			lexeme:    "(",
			want:      Token{TokenType: LPA, Lexeme: "(", Line: 0, Column: 0},
		},
		{
			name:      "create IDENTIFIER token",
			tokenType: IDENTIFIER,
			lexeme:    "my-var",
			want:      Token{TokenType: IDENTIFIER, Lexeme: "my-var", Line: 0, Column: 0},
		},
		{
			name:      "create STRING token",
			tokenType: STRING,
			lexeme:    "hello",
			want:      Token{TokenType: STRING, Lexeme: "hello", Line: 0, Column: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Create(tt.tokenType, tt.lexeme, 0, 0)
			if got != tt.want {
				t.Errorf("Create() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenString(t *testing.T) {
	tok := Create(IDENTIFIER, "foo", 3, 10)
	want := `Token {Type: IDENTIFIER, Text: "foo"}`
	if got := tok.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
