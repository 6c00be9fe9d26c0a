package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dualcred/ledger-cli/internal/model"
	"github.com/dualcred/ledger-cli/internal/report"
	"github.com/dualcred/ledger-cli/internal/schema"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := chi.NewRouter()
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/api", func(r chi.Router) {
			r.Get("/ledger", func(w http.ResponseWriter, req *http.Request) {
				res, err := env.Engine.Load(req.Context())
				if err != nil {
					writeError(w, http.StatusInternalServerError, err)
					return
				}
				writeJSON(w, http.StatusOK, map[string]any{
					"records":     res.Set.Records,
					"diagnostics": res.Diagnostics,
				})
			})

			r.Post("/transactions", func(w http.ResponseWriter, req *http.Request) {
				var payload []apiTransaction
				if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
					writeError(w, http.StatusBadRequest, eris.Wrap(err, "decode request body"))
					return
				}

				batch := model.NewRecordSet()
				for _, t := range payload {
					batch.Append(t.toRecord())
				}

				merge, err := env.Engine.Submit(req.Context(), batch)
				if err != nil {
					writeError(w, http.StatusInternalServerError, err)
					return
				}
				writeJSON(w, http.StatusOK, map[string]any{
					"nothing_to_merge": merge.NothingToMerge,
					"added":            merge.Added,
					"duplicates":       merge.Duplicates,
					"partitions":       merge.Touched,
					"total":            merge.Set.Len(),
				})
			})

			r.Get("/agents", func(w http.ResponseWriter, req *http.Request) {
				filter, err := parseFilter(
					req.URL.Query().Get("from"),
					req.URL.Query().Get("to"),
					req.URL.Query().Get("agent"),
				)
				if err != nil {
					writeError(w, http.StatusBadRequest, err)
					return
				}
				res, err := env.Engine.Load(req.Context())
				if err != nil {
					writeError(w, http.StatusInternalServerError, err)
					return
				}
				writeJSON(w, http.StatusOK, report.Summarize(res.Set, filter))
			})

			r.Get("/export", func(w http.ResponseWriter, req *http.Request) {
				filter, err := parseFilter(
					req.URL.Query().Get("from"),
					req.URL.Query().Get("to"),
					req.URL.Query().Get("agent"),
				)
				if err != nil {
					writeError(w, http.StatusBadRequest, err)
					return
				}
				res, err := env.Engine.Load(req.Context())
				if err != nil {
					writeError(w, http.StatusInternalServerError, err)
					return
				}
				data, err := env.Engine.Export(req.Context(), filter.Apply(res.Set))
				if err != nil {
					writeError(w, http.StatusInternalServerError, err)
					return
				}
				w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
				w.Header().Set("Content-Disposition", `attachment; filename="ledger-export.xlsx"`)
				w.WriteHeader(http.StatusOK)
				w.Write(data)
			})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// apiTransaction is the wire shape of a submitted transaction. Derived
// fields are not accepted: the engine recomputes them.
type apiTransaction struct {
	Date         string          `json:"date"`
	Beneficiary  string          `json:"beneficiary"`
	Agent        string          `json:"agent"`
	Transacted   decimal.Decimal `json:"transacted_value"`
	Released     decimal.Decimal `json:"released_value"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Commission   decimal.Decimal `json:"commission"`
	Extra        decimal.Decimal `json:"extra"`
	PctAgent     decimal.Decimal `json:"pct_agent"`
	Installments decimal.Decimal `json:"installment_count"`
}

func (t apiTransaction) toRecord() model.Record {
	return model.Record{
		Date:         schema.ParseDate(t.Date),
		Beneficiary:  t.Beneficiary,
		Agent:        t.Agent,
		Transacted:   t.Transacted,
		Released:     t.Released,
		InterestRate: t.InterestRate,
		Commission:   t.Commission,
		Extra:        t.Extra,
		PctAgent:     t.PctAgent,
		Installments: t.Installments,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
