package vdom

// Element helpers build element nodes with H. Arguments follow H.

// Sectioning

func Main(args ...any) *Node    { return H("main", args...) }
func Header(args ...any) *Node  { return H("header", args...) }
func Footer(args ...any) *Node  { return H("footer", args...) }
func Nav(args ...any) *Node     { return H("nav", args...) }
func Section(args ...any) *Node { return H("section", args...) }
func Article(args ...any) *Node { return H("article", args...) }
func Aside(args ...any) *Node   { return H("aside", args...) }
func H1(args ...any) *Node      { return H("h1", args...) }
func H2(args ...any) *Node      { return H("h2", args...) }
func H3(args ...any) *Node      { return H("h3", args...) }

// Text content

func Div(args ...any) *Node  { return H("div", args...) }
func P(args ...any) *Node    { return H("p", args...) }
func Span(args ...any) *Node { return H("span", args...) }
func Pre(args ...any) *Node  { return H("pre", args...) }
func Ul(args ...any) *Node   { return H("ul", args...) }
func Ol(args ...any) *Node   { return H("ol", args...) }
func Li(args ...any) *Node   { return H("li", args...) }
func Hr(args ...any) *Node   { return H("hr", args...) }

// Inline

func A(args ...any) *Node      { return H("a", args...) }
func Strong(args ...any) *Node { return H("strong", args...) }
func Em(args ...any) *Node     { return H("em", args...) }
func Code(args ...any) *Node   { return H("code", args...) }
func Small(args ...any) *Node  { return H("small", args...) }
func Br(args ...any) *Node     { return H("br", args...) }

// Forms

func Form(args ...any) *Node     { return H("form", args...) }
func Input(args ...any) *Node    { return H("input", args...) }
func Textarea(args ...any) *Node { return H("textarea", args...) }
func Select(args ...any) *Node   { return H("select", args...) }
func Option(args ...any) *Node   { return H("option", args...) }
func Button(args ...any) *Node   { return H("button", args...) }
func Label(args ...any) *Node    { return H("label", args...) }

// Tables

func Table(args ...any) *Node { return H("table", args...) }
func Thead(args ...any) *Node { return H("thead", args...) }
func Tbody(args ...any) *Node { return H("tbody", args...) }
func Tr(args ...any) *Node    { return H("tr", args...) }
func Th(args ...any) *Node    { return H("th", args...) }
func Td(args ...any) *Node    { return H("td", args...) }

// Media and interactive

func Img(args ...any) *Node     { return H("img", args...) }
func Dialog(args ...any) *Node  { return H("dialog", args...) }
func Details(args ...any) *Node { return H("details", args...) }
func Summary(args ...any) *Node { return H("summary", args...) }
