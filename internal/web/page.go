package web

import "html/template"

const (
	pageTitle    = "📊 Hottest Stock Tickers of the Week"
	pageSubtitle = "Tracking Top 3 Trending Stocks This Week 📈"
	sidebarTitle = "📈 Stock Market Insights"
	sidebarBlurb = "Stay ahead of the market with our weekly roundup of the hottest stock tickers. " +
		"From breakout movers to trending trades, we track the week’s most talked-about " +
		"stocks so you can spot momentum, gauge sentiment, and make informed decisions."
	buttonLabel = "Get Top 3 Trending Tickers This Week"
	busyText    = "Fetching top 3 trending tickers..."
	noTickers   = "⚠️ No tickers found. Check search results or widen the filter."
)

type pageData struct {
	Title        string
	Subtitle     string
	SidebarTitle string
	SidebarBlurb string
	Button       string
	Busy         bool
	BusyText     string
}

func newPageData(busy bool) pageData {
	return pageData{
		Title:        pageTitle,
		Subtitle:     pageSubtitle,
		SidebarTitle: sidebarTitle,
		SidebarBlurb: sidebarBlurb,
		Button:       buttonLabel,
		Busy:         busy,
		BusyText:     busyText,
	}
}

var pageHead = template.Must(template.New("head").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
aside { width: 18rem; padding: 1rem; background: #f0f2f6; min-height: 100vh; }
main { flex: 1; padding: 1rem 2rem; max-width: 60rem; }
.warning { background: #fffce7; border-left: 4px solid #f5c518; padding: .75rem; }
.error { background: #ffecec; border-left: 4px solid #ff4b4b; padding: .75rem; }
#busy { color: #555; }
</style>
</head>
<body>
<aside>
<h2>{{.SidebarTitle}}</h2>
<p>{{.SidebarBlurb}}</p>
</aside>
<main>
<h1>{{.Title}}</h1>
<h3>{{.Subtitle}}</h3>
<form action="/run" method="get"><button type="submit">{{.Button}}</button></form>
{{if .Busy}}<p id="busy">{{.BusyText}}</p>{{end}}
`))

var pageFoot = `</main>
</body>
</html>
`

var headingFragment = template.Must(template.New("heading").Parse(`<h3>📈 {{.}}</h3>
`))

var insightFragment = template.Must(template.New("insight").Parse(`<section class="insight">{{.}}</section>
`))

var noticeFragment = template.Must(template.New("notice").Parse(`<div class="{{.Class}}">{{.Text}}</div>
`))

type notice struct {
	Class string
	Text  string
}

// hideBusy is streamed last so the indicator disappears once the run is over.
const hideBusy = `<style>#busy { display: none; }</style>
`
