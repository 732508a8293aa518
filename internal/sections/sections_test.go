package sections

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coopsite/internal/imageurl"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
)

func english() Resolver { return NewResolver(locale.English, nil) }

func TestBuildImpactMergesSparseRemote(t *testing.T) {
	var remote ImpactContent
	if err := json.Unmarshal([]byte(`{"items":[{"type":"stat","value":"7"}]}`), &remote); err != nil {
		t.Fatalf("unmarshal impact: %v", err)
	}

	defaults := impactDefaults.For(locale.English)
	got := BuildImpact(&remote, english())

	if len(defaults.Items) != 5 {
		t.Fatalf("expected 5 default impact items, got %d", len(defaults.Items))
	}
	if len(got.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got.Items))
	}
	first := got.Items[0]
	if first.Value != "7" {
		t.Fatalf("expected remote value 7, got %q", first.Value)
	}
	if first.Label != defaults.Items[0].Label {
		t.Fatalf("expected default label %q, got %q", defaults.Items[0].Label, first.Label)
	}
	if first.Kind != ImpactStat || first.Icon != defaults.Items[0].Icon {
		t.Fatalf("unexpected kind/icon: %+v", first)
	}
	if diff := cmp.Diff(defaults.Items[1:], got.Items[1:]); diff != "" {
		t.Fatalf("items 1-4 should equal defaults (-want +got):\n%s", diff)
	}
	if got.Heading != defaults.Heading {
		t.Fatalf("expected default heading, got %q", got.Heading)
	}
}

func TestNilRemoteYieldsDefaults(t *testing.T) {
	for _, lang := range locale.Supported() {
		r := NewResolver(lang, nil)
		cases := []struct {
			name string
			want any
			got  any
		}{
			{"hero", DefaultHero(PagePilot, lang), BuildHero(PagePilot, nil, r)},
			{"stats", statsDefaults.For(lang), BuildStats(nil, r)},
			{"features", featuresDefaults.For(lang), BuildFeatures(nil, r)},
			{"testimonials", testimonialsDefaults.For(lang), BuildTestimonials(nil, r)},
			{"faq", DefaultFAQ(PageHome, lang), BuildFAQ(PageHome, nil, r)},
			{"cta", callToActionDefaults.For(lang), BuildCallToAction(nil, r)},
			{"mission", missionDefaults.For(lang), BuildMission(nil, r)},
			{"values", valuesDefaults.For(lang), BuildValues(nil, r)},
			{"team", teamDefaults.For(lang), BuildTeam(nil, r)},
			{"impact", impactDefaults.For(lang), BuildImpact(nil, r)},
			{"projects", projectsDefaults.For(lang), BuildProjects(nil, r)},
			{"contact details", contactDetailsDefaults.For(lang), BuildContactDetails(nil, r)},
			{"contact form", contactFormDefaults.For(lang), BuildContactForm(nil, r)},
			{"blog labels", blogLabelsDefaults.For(lang), BuildBlogLabels(nil, r)},
			{"navigation", navigationDefaults.For(lang), BuildNavigation(nil, r)},
			{"footer", footerDefaults.For(lang), BuildFooter(nil, r)},
		}
		for _, tc := range cases {
			if diff := cmp.Diff(tc.want, tc.got); diff != "" {
				t.Fatalf("%s/%s: nil remote should equal defaults (-want +got):\n%s", lang, tc.name, diff)
			}
		}
	}
}

func TestViewsNeverContainNulls(t *testing.T) {
	sparse := `{"items":null,"heading":null}`
	var impact ImpactContent
	var stats StatsContent
	var faq FAQContent
	for _, target := range []any{&impact, &stats, &faq} {
		if err := json.Unmarshal([]byte(sparse), target); err != nil {
			t.Fatalf("unmarshal sparse: %v", err)
		}
	}
	var footer FooterContent
	if err := json.Unmarshal([]byte(`{"links":[null,{"label":"Only label"}],"social":[]}`), &footer); err != nil {
		t.Fatalf("unmarshal footer: %v", err)
	}

	r := english()
	views := map[string]any{
		"impact":      BuildImpact(&impact, r),
		"stats":       BuildStats(&stats, r),
		"faq":         BuildFAQ(PagePilot, &faq, r),
		"footer":      BuildFooter(&footer, r),
		"footer nil":  BuildFooter(nil, r),
		"team nil":    BuildTeam(nil, r),
		"hero sparse": BuildHero(PageHome, &HeroContent{}, r),
		"projects":    BuildProjects(&ProjectsContent{Projects: []*ProjectContent{nil}}, r),
	}
	for name, view := range views {
		encoded, err := json.Marshal(view)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		var decoded any
		if err := json.Unmarshal(encoded, &decoded); err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if path, found := findNull(decoded, name); found {
			t.Fatalf("found null at %s in %s", path, encoded)
		}
	}
}

func findNull(value any, path string) (string, bool) {
	switch v := value.(type) {
	case nil:
		return path, true
	case map[string]any:
		for key, child := range v {
			if p, found := findNull(child, path+"."+key); found {
				return p, true
			}
		}
	case []any:
		for i, child := range v {
			if p, found := findNull(child, path+"["+itoa(i)+"]"); found {
				return p, true
			}
		}
	}
	return "", false
}

func itoa(i int) string {
	encoded, _ := json.Marshal(i)
	return string(encoded)
}

func TestMergeListIsPositional(t *testing.T) {
	defaults := []Question{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
		{Question: "q3", Answer: "a3"},
		{Question: "q4", Answer: "a4"},
		{Question: "q5", Answer: "a5"},
	}
	remote := []*QuestionContent{
		{Question: localized.Plain("remote q1")},
		{Answer: localized.Map(map[string]string{"en": "remote a2"})},
	}
	r := english()
	build := func(item *QuestionContent, d Question) Question {
		if item == nil {
			return d
		}
		return Question{Question: r.String(item.Question, d.Question), Answer: r.String(item.Answer, d.Answer)}
	}

	got := mergeList(remote, defaults, build)
	want := []Question{
		{Question: "remote q1", Answer: "a1"},
		{Question: "q2", Answer: "remote a2"},
		defaults[2], defaults[3], defaults[4],
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected merge (-want +got):\n%s", diff)
	}

	longer := append(remote, nil, nil, nil, &QuestionContent{Question: localized.Plain("extra")}, nil)
	got = mergeList(longer, defaults, build)
	if len(got) != 7 {
		t.Fatalf("expected 7 items, got %d", len(got))
	}
	if diff := cmp.Diff(defaults[2:], got[2:5]); diff != "" {
		t.Fatalf("null remote items should keep defaults (-want +got):\n%s", diff)
	}
	if got[5] != (Question{Question: "extra"}) {
		t.Fatalf("extra item should resolve against the zero value, got %+v", got[5])
	}
	if got[6] != (Question{}) {
		t.Fatalf("items past the defaults resolve against the zero value, got %+v", got[6])
	}

	if got := mergeList[QuestionContent](nil, defaults, build); len(got) != 5 || &got[0] == &defaults[0] {
		t.Fatalf("absent remote should copy defaults")
	}
	if got := mergeList([]*QuestionContent{}, []Question(nil), build); got == nil {
		t.Fatalf("merge should never return nil")
	}
}

func TestBuildIsIdempotentAndLeavesDefaultsAlone(t *testing.T) {
	var remote FooterContent
	payload := `{"tagline":{"du":"Samen","en":"Together"},"links":[{"label":"Docs"}],"social":[{"platform":"twitter","href":"https://x.com/coop"}]}`
	if err := json.Unmarshal([]byte(payload), &remote); err != nil {
		t.Fatalf("unmarshal footer: %v", err)
	}
	before := footerDefaults.For(locale.Dutch)
	snapshot := Footer{
		Tagline: before.Tagline,
		Links:   append([]Link(nil), before.Links...),
		Social:  append([]SocialLink(nil), before.Social...),
	}

	r := NewResolver(locale.Dutch, nil)
	first := BuildFooter(&remote, r)
	first.Links[0].Label = "mutated"
	second := BuildFooter(&remote, r)

	if second.Links[0].Label != "Docs" {
		t.Fatalf("expected fresh build, got %q", second.Links[0].Label)
	}
	if second.Tagline != "Samen" {
		t.Fatalf("expected dutch tagline, got %q", second.Tagline)
	}
	if second.Social[0].Platform != SocialX {
		t.Fatalf("expected twitter alias to map to x, got %q", second.Social[0].Platform)
	}
	after := footerDefaults.For(locale.Dutch)
	if diff := cmp.Diff(snapshot.Links, after.Links); diff != "" {
		t.Fatalf("defaults mutated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(BuildFooter(&remote, r), BuildFooter(&remote, r)); diff != "" {
		t.Fatalf("build not idempotent:\n%s", diff)
	}
}

func TestClosedEnumerationsFallBack(t *testing.T) {
	remote := &CardGridContent{Items: []*CardContent{
		{Icon: localized.Plain("rocket")},
		{Icon: localized.Plain(" WIND ")},
	}}
	got := BuildFeatures(remote, english())
	defaults := featuresDefaults.For(locale.English)
	if got.Items[0].Icon != defaults.Items[0].Icon {
		t.Fatalf("unknown icon should keep default %q, got %q", defaults.Items[0].Icon, got.Items[0].Icon)
	}
	if got.Items[1].Icon != IconWind {
		t.Fatalf("expected wind icon, got %q", got.Items[1].Icon)
	}

	if ParseIcon("nope", Icon("also-nope")) != IconLeaf {
		t.Fatalf("expected enumeration default icon")
	}
	if ParseProjectStatus("ACTIVE", ProjectPlanned) != ProjectActive {
		t.Fatalf("expected case-insensitive status")
	}
	if ParseImpactKind("chart", ImpactText) != ImpactText {
		t.Fatalf("expected fallback kind")
	}
	if ParseSocialPlatform("myspace", "") != SocialFacebook {
		t.Fatalf("expected enumeration default platform")
	}
}

func TestImagesUseCDNBuilder(t *testing.T) {
	images := imageurl.Builder{ProjectID: "coop123", Dataset: "production"}
	r := NewResolver(locale.Dutch, images)

	var remote HeroContent
	payload := `{"title":"Zon","image":{"asset":{"_ref":"image-abc123-1200x800-png"},"alt":{"en":"Roof","du":"Dak"}}}`
	if err := json.Unmarshal([]byte(payload), &remote); err != nil {
		t.Fatalf("unmarshal hero: %v", err)
	}
	got := BuildHero(PageHome, &remote, r)
	want := Image{
		URL: "https://cdn.sanity.io/images/coop123/production/abc123-1200x800.png?auto=format&fit=crop&h=900&w=1600",
		Alt: "Dak",
	}
	if diff := cmp.Diff(want, got.Image); diff != "" {
		t.Fatalf("unexpected image (-want +got):\n%s", diff)
	}

	broken := &ImageContent{Asset: &AssetReference{Ref: "file-xyz"}}
	fallback := DefaultHero(PageHome, locale.Dutch).Image
	if got := r.Image(broken, fallback, heroImage); got != fallback {
		t.Fatalf("malformed asset should keep default, got %+v", got)
	}

	direct := &ImageContent{URL: localized.Plain("https://example.com/a.jpg")}
	if got := NewResolver(locale.English, nil).Image(direct, fallback, heroImage); got.URL != "https://example.com/a.jpg" {
		t.Fatalf("expected direct url, got %q", got.URL)
	}
}

func TestPlainEmptyStringWins(t *testing.T) {
	got := BuildMission(&MissionContent{Title: localized.Plain("")}, english())
	if got.Title != "" {
		t.Fatalf("plain empty string should win, got %q", got.Title)
	}
	got = BuildMission(&MissionContent{Title: localized.Map(map[string]string{"en": "", "du": ""})}, english())
	if got.Title != missionDefaults.For(locale.English).Title {
		t.Fatalf("empty localized entries should fall back, got %q", got.Title)
	}
}

func TestDefaultsForUnknownLanguageUsePrimary(t *testing.T) {
	got := navigationDefaults.For(locale.Code("fr"))
	if diff := cmp.Diff(navigationDefaults.For(locale.English), got); diff != "" {
		t.Fatalf("expected english defaults (-want +got):\n%s", diff)
	}
	if NewResolver(locale.Code("xx"), nil).Lang() != locale.English {
		t.Fatalf("resolver should coerce unknown language")
	}
}

func TestParseCounter(t *testing.T) {
	cases := []struct {
		value    string
		lang     locale.Code
		target   float64
		decimals int
		ok       bool
	}{
		{"1,250", locale.English, 1250, 0, true},
		{"4.8", locale.English, 4.8, 1, true},
		{" 38 ", locale.English, 38, 0, true},
		{"1.250", locale.Dutch, 1250, 0, true},
		{"2,5", locale.Dutch, 2.5, 1, true},
		{"12.500,75", locale.Dutch, 12500.75, 2, true},
		{"1,250", locale.Code("xx"), 1250, 0, true},
		{"46%", locale.English, 0, 0, false},
		{"", locale.Dutch, 0, 0, false},
	}
	for _, tc := range cases {
		target, decimals, ok := ParseCounter(tc.value, tc.lang)
		if target != tc.target || decimals != tc.decimals || ok != tc.ok {
			t.Fatalf("ParseCounter(%q, %s) = %v, %d, %v", tc.value, tc.lang, target, decimals, ok)
		}
	}
}

func TestDutchStatsParseLocally(t *testing.T) {
	remote := &StatsContent{Items: []*StatContent{{Value: localized.Map(map[string]string{"en": "2.5", "du": "2,5"})}}}
	got := BuildStats(remote, NewResolver(locale.Dutch, nil))
	if got.Items[0].Target != 2.5 || got.Items[0].Decimals != 1 {
		t.Fatalf("expected 2.5 with one decimal, got %+v", got.Items[0])
	}
	defaults := BuildStats(nil, NewResolver(locale.Dutch, nil))
	if defaults.Items[0].Target != 1250 || defaults.Items[0].Decimals != 0 {
		t.Fatalf("expected Dutch default 1250, got %+v", defaults.Items[0])
	}
}

func TestNavigationLabelsFor(t *testing.T) {
	labels := BuildNavigation(&NavigationContent{Pilot: localized.Plain("Pilots")}, NewResolver(locale.Dutch, nil))
	if labels.For(PagePilot) != "Pilots" {
		t.Fatalf("expected remote pilot label, got %q", labels.For(PagePilot))
	}
	if labels.For(PageAbout) != "Over ons" {
		t.Fatalf("expected dutch about label, got %q", labels.For(PageAbout))
	}
}
