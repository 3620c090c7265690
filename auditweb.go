package main

import (
	"fmt"
	"net/http"

	"main/modules"
	"main/modules/db"
)

// AuditServer exposes the action log over HTTP: a live SSE stream of new
// entries plus recent history.
type AuditServer struct {
	port   string
	server *http.Server
}

func NewAuditServer(port string) *AuditServer {
	as := &AuditServer{port: port}

	mux := http.NewServeMux()
	mux.HandleFunc("/actions", as.handleSSE)
	mux.HandleFunc("/actions/history", as.handleHistory)
	mux.HandleFunc("/", as.handleIndex)

	as.server = &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return as
}

func (as *AuditServer) Start() {
	go func() {
		fmt.Printf("Audit log listening on http://localhost:%s\n", as.port)
		if err := as.server.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Printf("Audit log server error: %v\n", err)
		}
	}()
}

func (as *AuditServer) Stop() error {
	if as.server != nil {
		return as.server.Close()
	}
	return nil
}

func formatAuditEntry(e db.AuditEntry) string {
	return fmt.Sprintf("%s user=%d %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.UserID, e.Action)
}

func (as *AuditServer) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	client := modules.SubscribeAudit()
	defer modules.UnsubscribeAudit(client)

	fmt.Fprintf(w, "data: Connected to Gatekeeper audit stream\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	for {
		select {
		case entry, ok := <-client:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", formatAuditEntry(entry))
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		case <-r.Context().Done():
			return
		}
	}
}

func (as *AuditServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	entries, err := db.RecentAudit(1000)
	if err != nil {
		return
	}

	// newest last, matching the stream order
	for i := len(entries) - 1; i >= 0; i-- {
		fmt.Fprintln(w, formatAuditEntry(entries[i]))
	}
}

func (as *AuditServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Gatekeeper Audit Log</title>
    <style>
        body {
            font-family: 'JetBrains Mono', 'Fira Code', 'Consolas', monospace;
            background: linear-gradient(135deg, #1a1a2e, #16213e);
            color: #e0e0e0;
            margin: 0;
            padding: 5px;
            font-size: 13px;
            line-height: 1.3;
        }
        h1 { font-size: 16px; margin: 0 0 5px 0; color: #00d4ff; text-align: center; }
        .logs-container {
            background: rgba(0, 0, 0, 0.5);
            border: 1px solid #444;
            height: calc(100vh - 40px);
            border-radius: 3px;
        }
        #logs {
            height: 100%;
            overflow-y: auto;
            padding: 3px;
            font-size: 12px;
            line-height: 1.4;
        }
        .log-entry { margin-bottom: 1px; white-space: pre-wrap; word-wrap: break-word; }
    </style>
</head>
<body>
    <h1>Gatekeeper Audit Log</h1>
    <div class="logs-container"><div id="logs"></div></div>
    <script>
        const logsDiv = document.getElementById('logs');

        function addEntry(line) {
            const el = document.createElement('div');
            el.className = 'log-entry';
            el.textContent = line;
            logsDiv.appendChild(el);
            logsDiv.scrollTop = logsDiv.scrollHeight;
        }

        async function loadHistory() {
            try {
                const response = await fetch('/actions/history');
                if (response.ok) {
                    const history = await response.text();
                    history.split('\n').filter(line => line.trim()).forEach(addEntry);
                }
            } catch (e) {
                console.log('No history available');
            }
        }

        const eventSource = new EventSource('/actions');
        eventSource.onmessage = event => addEntry(event.data);
        eventSource.onopen = loadHistory;
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, html)
}
