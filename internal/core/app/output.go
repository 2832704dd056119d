package app

import (
	"bagrules/internal/core/errors"
	"bagrules/internal/engine/graph"
	"bagrules/internal/output"
	"bagrules/internal/shared/observability"
	"os"
	"path/filepath"
)

// GenerateOutputs writes each export configured under [output].
func (a *App) GenerateOutputs(root graph.Symbol, ancestors []graph.Symbol) error {
	out := a.Config.Output

	if out.DOT != "" {
		dot, err := output.NewDOTGenerator(a.Graph).Generate(root, ancestors)
		if err != nil {
			return err
		}
		if err := writeArtifact(out.DOT, dot); err != nil {
			return err
		}
		a.logger.Info("wrote DOT graph", "path", out.DOT)
	}

	if out.TSV != "" {
		tsv, err := output.NewTSVGenerator(a.Graph).Generate()
		if err != nil {
			return err
		}
		if err := writeArtifact(out.TSV, tsv); err != nil {
			return err
		}
		a.logger.Info("wrote TSV edges", "path", out.TSV)
	}

	if out.MetricsTSV != "" {
		tsv, err := output.NewTSVGenerator(a.Graph).GenerateMetrics(graph.ComputeMetrics(a.Graph))
		if err != nil {
			return err
		}
		if err := writeArtifact(out.MetricsTSV, tsv); err != nil {
			return err
		}
		a.logger.Info("wrote container metrics", "path", out.MetricsTSV)
	}

	if out.Mermaid != "" {
		gen := output.NewMermaidGenerator(a.Graph)
		gen.SetMetrics(graph.ComputeMetrics(a.Graph))
		mermaid, err := gen.Generate(root)
		if err != nil {
			return err
		}
		if err := writeArtifact(out.Mermaid, mermaid); err != nil {
			return err
		}
		a.logger.Info("wrote Mermaid diagram", "path", out.Mermaid)
	}

	return nil
}

func (a *App) writeMetrics() error {
	path := a.Config.Metrics.Textfile
	if path == "" {
		return nil
	}
	if err := ensureParentDir(path); err != nil {
		return err
	}
	if err := observability.WriteTextfile(path); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "failed to write metrics"), errors.CtxPath, path)
	}
	a.logger.Debug("wrote metrics textfile", "path", path)
	return nil
}

func writeArtifact(path, content string) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "failed to write output"), errors.CtxPath, path)
	}
	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "failed to create output directory"), errors.CtxPath, dir)
	}
	return nil
}
