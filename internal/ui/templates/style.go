package templates

import "strconv"

func itoa(n int) string {
	return strconv.Itoa(n)
}

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;background:#f6f7f9;color:#222}
header{background:#72BCD4;color:#fff;padding:1rem 2rem}
main{padding:1rem 2rem}
.filters{display:flex;gap:1rem;align-items:center;margin-bottom:1rem}
.banner.error{background:#fde2e2;color:#8a1f1f;padding:.75rem 1rem;border-radius:4px;margin-bottom:1rem}
.metrics{display:grid;grid-template-columns:repeat(3,1fr);gap:1rem;margin-bottom:1rem}
.metric{background:#fff;border-radius:6px;padding:1rem;box-shadow:0 1px 2px rgba(0,0,0,.08)}
.metric .label{display:block;font-size:.85rem;color:#666}
.metric .value{font-size:1.6rem;font-weight:600}
.charts{display:grid;grid-template-columns:repeat(auto-fit,minmax(420px,1fr));gap:1rem}
.charts figure{margin:0;background:#fff;border-radius:6px;padding:.5rem}
.charts img{width:100%;height:auto}
.tables{display:grid;grid-template-columns:repeat(auto-fit,minmax(320px,1fr));gap:1rem;margin-top:1rem}
.table-card{background:#fff;border-radius:6px;padding:1rem}
.table-card h2{font-size:1rem;margin-top:0}
table{width:100%;border-collapse:collapse}
th,td{text-align:left;padding:.35rem .5rem;border-bottom:1px solid #eee}
td:last-child,th:last-child{text-align:right}
.empty,.more{color:#888;font-size:.85rem}
`
