package web

import "net/http"

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>dpui</title>
    <style>
        body { font-family: sans-serif; max-width: 720px; margin: 40px auto; padding: 0 20px; }
        table { border-collapse: collapse; width: 100%; margin: 12px 0; }
        td, th { border-bottom: 1px solid #ddd; padding: 6px; text-align: left; }
        button { background: #007bff; color: white; border: none; padding: 6px 12px; border-radius: 4px; cursor: pointer; }
        button:hover { background: #0056b3; }
        .off { color: #999; }
        #log { font-family: monospace; font-size: 12px; background: #f0f0f0; padding: 10px; height: 120px; overflow: auto; }
    </style>
</head>
<body>
    <h1>Displays</h1>
    <table id="displays"></table>
    <button onclick="loadDisplays()">Refresh</button>

    <h1>Presets</h1>
    <table id="presets"></table>
    <input id="name" placeholder="name">
    <input id="hotkey" placeholder="hotkey, e.g. Cmd+Shift+1">
    <button onclick="saveCurrent()">Save current arrangement</button>

    <h1>Events</h1>
    <div id="log"></div>

    <script>
        let rawReport = '';

        async function loadDisplays() {
            const res = await fetch('/api/displays');
            const data = await res.json();
            const t = document.getElementById('displays');
            if (!res.ok) { t.innerHTML = '<tr><td>' + data.error + '</td></tr>'; return; }
            rawReport = data.rawCommand;
            t.innerHTML = '<tr><th>id</th><th>resolution</th><th>origin</th><th>rotation</th><th></th></tr>' +
                data.displays.map(d => '<tr class="' + (d.enabled ? '' : 'off') + '"><td>' + d.id + '</td><td>' +
                    (d.resolution || 'unknown') + '</td><td>(' + d.origin.x + ',' + d.origin.y + ')</td><td>' +
                    d.rotation + '</td><td><button onclick="toggle(\'' + d.id + '\',' + !d.enabled + ')">' +
                    (d.enabled ? 'Disable' : 'Enable') + '</button></td></tr>').join('');
        }

        async function toggle(id, enabled) {
            await fetch('/api/displays/' + id + '/toggle', {method: 'POST', body: JSON.stringify({enabled})});
            await loadDisplays();
        }

        async function loadPresets() {
            const res = await fetch('/api/presets');
            const data = await res.json();
            document.getElementById('presets').innerHTML = data.presets.map(p =>
                '<tr><td>' + p.name + '</td><td>' + (p.hotkey || '') + '</td><td>' +
                '<button onclick="applyPreset(\'' + p.id + '\')">Apply</button> ' +
                '<button onclick="deletePreset(\'' + p.id + '\')">Delete</button></td></tr>').join('');
        }

        async function applyPreset(id) {
            await fetch('/api/presets/' + id + '/apply', {method: 'POST'});
            await loadDisplays();
        }

        async function deletePreset(id) {
            await fetch('/api/presets/' + id, {method: 'DELETE'});
            await loadPresets();
        }

        async function saveCurrent() {
            const line = rawReport.split('\n').reverse().find(l => l.trim().startsWith('displayplacer ') && l.includes('origin:'));
            if (!line) { return; }
            await fetch('/api/presets', {method: 'POST', body: JSON.stringify({
                name: document.getElementById('name').value || 'Preset',
                config: line.trim(),
                hotkey: document.getElementById('hotkey').value
            })});
            await loadPresets();
        }

        const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/api/events');
        ws.onmessage = (m) => {
            const ev = JSON.parse(m.data);
            const log = document.getElementById('log');
            log.textContent = ev.type + ' ' + (ev.presetId || '') + '\n' + log.textContent;
            if (ev.type === 'presets-changed') { loadPresets(); }
            if (ev.type === 'refresh-displays' || ev.type === 'apply-preset-hotkey') { loadDisplays(); }
        };

        loadDisplays();
        loadPresets();
    </script>
</body>
</html>
`
