// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package leaderboard

const dashboardTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>{{ .Title }}</title>
    {{- if .DisableCaching }}
    <meta http-equiv="Cache-Control" content="no-cache, no-store, must-revalidate"/>
    <meta http-equiv="Pragma" content="no-cache"/>
    <meta http-equiv="Expires" content="0"/>
    {{- end }}
    {{- if .AutoRefresh }}
    <meta http-equiv="refresh" content="1">
    {{- end }}
    <link rel="preconnect" href="https://fonts.gstatic.com">
    <link href="https://fonts.googleapis.com/css2?family=Open+Sans:wght@300;400;600;700&display=swap" rel="stylesheet">
    <script type="text/javascript" src="https://www.gstatic.com/charts/loader.js"></script>
    <script type="text/javascript">
        google.charts.load("current", {packages:["corechart"]});
    </script>
    <style>
    body {
        font-family: 'Open Sans', sans-serif;
        background: linear-gradient(135deg, #0f172a, #1e293b, #0f172a);
        color: #fff;
        margin: 0;
        padding: 1.5em;
        min-height: 100vh;
    }
    .container { max-width: 80em; margin: 0 auto; }
    h1 { font-size: 2.25em; margin-bottom: 0.25em; }
    .subtitle { color: #94a3b8; font-size: 1.1em; margin-bottom: 2em; }
    .ranges { display: flex; gap: 0.5em; margin-bottom: 1.5em; }
    .ranges button, .ranges span {
        padding: 0.5em 1em;
        border: 0;
        border-radius: 0.5em;
        font: inherit;
        font-weight: 600;
        background-color: #334155;
        color: #cbd5e1;
        cursor: pointer;
    }
    .ranges .active { background-color: #2563eb; color: #fff; }
    .loading { display: flex; align-items: center; justify-content: center; height: 16em; }
    .spinner {
        width: 4em; height: 4em;
        border-radius: 50%;
        border-top: 2px solid #3b82f6;
        border-bottom: 2px solid #3b82f6;
        animation: spin 1s linear infinite;
    }
    @keyframes spin { to { transform: rotate(360deg); } }
    .error {
        background-color: rgba(220,38,38,0.2);
        border: 1px solid rgba(220,38,38,0.4);
        border-radius: 0.75em;
        padding: 1em;
        margin-bottom: 1.5em;
    }
    .cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(14em, 1fr)); gap: 1.5em; margin-bottom: 2em; }
    .panel {
        background-color: #1e293b;
        border: 1px solid #334155;
        border-radius: 0.75em;
        padding: 1.5em;
    }
    .card h3 { color: #94a3b8; font-size: 0.9em; font-weight: 600; margin: 0 0 0.5em 0; }
    .card .value { font-size: 2em; font-weight: 700; margin: 0; }
    .card .note { color: #64748b; font-size: 0.75em; margin: 0.25em 0 0 0; }
    .card.commits { border-top: 3px solid #4ade80; }
    .card.prs { border-top: 3px solid #c084fc; }
    .card.reviews { border-top: 3px solid #60a5fa; }
    .card.impact { border-top: 3px solid #facc15; }
    .charts { display: grid; grid-template-columns: repeat(auto-fit, minmax(28em, 1fr)); gap: 1.5em; margin-bottom: 2em; }
    .chart { width: 100%; height: 300px; }
    h2 { font-size: 1.25em; margin-top: 0; }
    table { width: 100%; border-collapse: collapse; }
    th { text-align: left; color: #94a3b8; font-weight: 600; padding: 0.75em 1em; border-bottom: 1px solid #334155; }
    td { padding: 1em; border-bottom: 1px solid rgba(51,65,85,0.5); }
    .rank {
        display: inline-flex; align-items: center; justify-content: center;
        width: 2em; height: 2em; border-radius: 50%; font-weight: 700;
    }
    .rank-1 { background-color: rgba(234,179,8,0.2); color: #facc15; }
    .rank-2 { background-color: rgba(100,116,139,0.2); color: #cbd5e1; }
    .rank-3 { background-color: rgba(249,115,22,0.2); color: #fb923c; }
    .rank-n { background-color: #334155; color: #94a3b8; }
    .added { color: #4ade80; }
    .deleted { color: #f87171; }
    .bar { display: inline-block; width: 6em; height: 0.5em; background-color: #334155; border-radius: 1em; overflow: hidden; vertical-align: middle; margin-right: 0.5em; }
    .bar div { height: 100%; background: linear-gradient(90deg, #3b82f6, #a855f7); }
    .button:disabled, .close:disabled { opacity: 0.5; cursor: default; }
    .button { padding: 0.25em 0.75em; border: 0; border-radius: 0.5em; background-color: #2563eb; color: #fff; font: inherit; font-size: 0.9em; cursor: pointer; }
    .overlay {
        position: fixed; top: 0; right: 0; bottom: 0; left: 0;
        background-color: rgba(0,0,0,0.6);
        display: flex; align-items: center; justify-content: center;
        padding: 1em;
    }
    .overlay .panel { max-width: 48em; width: 100%; max-height: 90vh; overflow-y: auto; }
    .detail-header { display: flex; justify-content: space-between; align-items: flex-start; }
    .detail-header h2 { font-size: 1.9em; margin-bottom: 0.25em; }
    .close { background: none; border: 0; color: #94a3b8; font-size: 1.5em; cursor: pointer; }
    .stats { display: grid; grid-template-columns: 1fr 1fr; gap: 1em; margin: 1.5em 0; }
    .stats .card { background-color: #0f172a; border-radius: 0.5em; padding: 1em; }
    .tags span {
        display: inline-block; margin: 0 0.5em 0.5em 0; padding: 0.25em 0.75em;
        border-radius: 1em; background-color: rgba(37,99,235,0.2); color: #60a5fa;
        border: 1px solid rgba(37,99,235,0.3); font-size: 0.9em;
    }
    .score {
        background: linear-gradient(90deg, rgba(37,99,235,0.2), rgba(147,51,234,0.2));
        border: 1px solid rgba(37,99,235,0.3);
        border-radius: 0.5em; padding: 1em; margin-top: 1.5em;
    }
    .score .value { font-size: 2.25em; font-weight: 700; margin: 0; }
    </style>
</head>
<body>
<div class="container">
    <h1>{{ .Title }}</h1>
    <div class="subtitle">{{ .Subtitle }}</div>

    {{ if .Interactive }}
    <form class="ranges" method="post" action="/range">
        {{- range .Ranges }}
        <button type="submit" name="range" value="{{ .Value }}"{{ if .Active }} class="active"{{ end }}>{{ .Label }}</button>
        {{- end }}
    </form>
    {{ else }}
    <div class="ranges">
        {{- range .Ranges }}
        <span{{ if .Active }} class="active"{{ end }}>{{ .Label }}</span>
        {{- end }}
    </div>
    {{ end }}

{{ if .Loading }}
    <div class="loading"><div class="spinner" title="Loading"></div></div>
{{ else }}
    {{ with .Error }}<div class="error">Failed to load developer metrics: {{ . }}</div>{{ end }}

    <div class="cards">
        {{- range .Cards }}
        <div class="panel card {{ .Class }}">
            <h3>{{ .Title }}</h3>
            <p class="value">{{ .Value }}</p>
            <p class="note">{{ .Note }}</p>
        </div>
        {{- end }}
    </div>

    <div class="charts">
        {{- range .Charts }}
        <div class="panel">
            <h2>{{ .Title }}</h2>
            {{ template "chart" . }}
        </div>
        {{- end }}
    </div>

    <div class="panel">
        <h2>Developer Leaderboard</h2>
        <table id="leaderboard">
            <thead>
                <tr>
                    <th>Rank</th>
                    <th>Developer</th>
                    <th>Commits</th>
                    <th>PRs</th>
                    <th>Reviews</th>
                    <th>Lines +/-</th>
                    <th>Impact</th>
                    <th>Actions</th>
                </tr>
            </thead>
            <tbody>
            {{- range .Rows }}
                <tr>
                    <td><span class="rank {{ .RankClass }}">{{ .Rank }}</span></td>
                    <td class="name">{{ .Name }}</td>
                    <td>{{ .Commits }}</td>
                    <td>{{ .PRs }}</td>
                    <td>{{ .Reviews }}</td>
                    <td><span class="added">+{{ .LinesAdded }}</span> / <span class="deleted">-{{ .LinesDeleted }}</span></td>
                    <td><span class="bar"><div style="width: {{ .Bar }}%"></div></span>{{ .Impact }}</td>
                    <td>
                        {{- if $.Interactive }}
                        <form method="post" action="/select">
                            <input type="hidden" name="developer" value="{{ .Name }}">
                            <button class="button" type="submit">View Details</button>
                        </form>
                        {{- else }}
                        <button class="button" type="button" disabled>View Details</button>
                        {{- end }}
                    </td>
                </tr>
            {{- end }}
            </tbody>
        </table>
    </div>

    {{ with .Detail }}
    <div class="overlay" id="detail">
        <div class="panel">
            <div class="detail-header">
                <div>
                    <h2>{{ .Name }}</h2>
                    <p class="subtitle">Detailed Performance Metrics</p>
                </div>
                {{- if $.Interactive }}
                <form method="post" action="/close"><button class="close" type="submit" title="Close">&times;</button></form>
                {{- else }}
                <button class="close" type="button" title="Close" disabled>&times;</button>
                {{- end }}
            </div>

            <div class="stats">
                {{- range .Stats }}
                <div class="card">
                    <h3>{{ .Title }}</h3>
                    <p class="value">{{ .Value }}</p>
                </div>
                {{- end }}
            </div>

            <h3>Active Repositories</h3>
            <div class="tags">
                {{- range .Repos }}<span>{{ . }}</span>{{- end }}
            </div>

            <h3>Code Changes</h3>
            {{ template "chart" .Chart }}

            <div class="score">
                <h3>Overall Impact Score</h3>
                <p class="value">{{ .Impact }}/100</p>
            </div>
        </div>
    </div>
    {{ end }}
{{ end }}
</div>
</body>
</html>

{{ define "chart" }}
<div id="{{ .ElementID }}" class="chart"></div>
<script type="text/javascript">
    google.charts.setOnLoadCallback(function() {
        var data = google.visualization.arrayToDataTable({{ .Rows }});
        var chart = new google.visualization[{{ .Kind }}](document.getElementById({{ .ElementID }}));
        chart.draw(data, {{ .Options }});
    });
</script>
{{ end }}
`
