package extract

import (
	"testing"

	"github.com/ppiankov/factcheck/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestYear(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"embedded year", "東京大学は1877年に設立されました", "1877"},
		{"first of several", "1877年設立、1886年改称", "1877"},
		{"full-width digits", "１９４９年", "1949"},
		{"no year", "  明治時代  ", "明治時代"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Year(tt.text))
		})
	}
}

func TestURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "bare url in prose",
			text: "公式サイトは https://u-tokyo.ac.jp/ja/index.html です",
			want: []string{"https://u-tokyo.ac.jp/ja/index.html"},
		},
		{
			name: "japanese punctuation terminator",
			text: "公式サイトはhttps://www.kyoto-u.ac.jp/。",
			want: []string{"https://www.kyoto-u.ac.jp/"},
		},
		{
			name: "bracketed",
			text: "詳細は[https://example.com/about]を参照",
			want: []string{"https://example.com/about"},
		},
		{
			name: "full-width parentheses",
			text: "ウェブサイト（https://example.jp）",
			want: []string{"https://example.jp"},
		},
		{
			name: "parentheses in path",
			text: "詳しくは https://ja.wikipedia.org/wiki/Foo_(bar) を参照",
			want: []string{"https://ja.wikipedia.org/wiki/Foo_(bar)"},
		},
		{
			name: "parenthesized url with parentheses in path",
			text: "出典(https://en.wikipedia.org/wiki/Mercury_(planet))",
			want: []string{"https://en.wikipedia.org/wiki/Mercury_(planet)"},
		},
		{
			name: "trailing period",
			text: "See https://example.com.",
			want: []string{"https://example.com"},
		},
		{
			name: "two distinct urls",
			text: "https://a.example.com and https://b.example.com, also https://a.example.com",
			want: []string{"https://a.example.com", "https://b.example.com"},
		},
		{
			name: "scheme-less host",
			text: "公式サイトはu-tokyo.ac.jpです",
			want: []string{"u-tokyo.ac.jp"},
		},
		{
			name: "no url falls back to text",
			text: " わかりません ",
			want: []string{"わかりません"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URLs(tt.text))
		})
	}

	assert.Nil(t, URLs("   "))
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		units *UnitSet
		want  string
	}{
		{"separated meters", "富士山の標高は3,776メートルです", Meters, "3776"},
		{"short unit", "約780mです", Meters, "780"},
		{"unit beats earlier number", "2023年の測量では3776m", Meters, "3776"},
		{"decimal kilometers", "全長は約1.5kmです", Kilometers, "1.5"},
		{"full-width square kilometers", "面積は２１９４㎢", SquareKilometers, "2194"},
		{"people", "学生数は28,000人", People, "28000"},
		{"bare fallback", "about 42", Meters, "42"},
		{"nil units", "12,345", nil, "12345"},
		{"no number", "不明です", Meters, "不明です"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.text, tt.units))
		})
	}
}

func TestNames(t *testing.T) {
	t.Run("reading then name", func(t *testing.T) {
		names := Names("やまだ たろう（山田太郎）です")
		assert.Equal(t, "山田太郎", names[0])
	})

	t.Run("name then reading", func(t *testing.T) {
		names := Names("創設者は加藤弘之（かとうひろゆき）です")
		assert.Equal(t, "加藤弘之", names[0])
	})

	t.Run("katakana name", func(t *testing.T) {
		names := Names("監督はスティーブン・スピルバーグです")
		assert.Contains(t, names, "スティーブン・スピルバーグ")
	})

	t.Run("western name", func(t *testing.T) {
		names := Names("It was directed by Steven Spielberg.")
		assert.Contains(t, names, "Steven Spielberg")
	})

	t.Run("distinct", func(t *testing.T) {
		names := Names("山田太郎と山田太郎")
		count := 0
		for _, n := range names {
			if n == "山田太郎" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("fallback", func(t *testing.T) {
		assert.Equal(t, []string{"i do not know"}, Names(" i do not know "))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, Names(""))
	})
}

func TestCandidate(t *testing.T) {
	v := Candidate(model.FamilyLocation, "〒730-0001 広島県安芸郡府中町", nil)
	assert.Equal(t, []string{"広島県", "安芸郡", "府中町"}, v.Items)
	assert.Equal(t, "広島県,安芸郡,府中町", v.Text)

	v = Candidate(model.FamilyURL, "see https://example.com/", nil)
	assert.Equal(t, []string{"https://example.com/"}, v.Sources)
	assert.Equal(t, "https://example.com/", v.Text)

	v = Candidate(model.FamilyGenericText, "  大学  ", nil)
	assert.Equal(t, "大学", v.Text)
	assert.Equal(t, model.FamilyGenericText, v.Family)
}
