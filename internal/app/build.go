package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	interfacePath := strings.TrimSpace(req.InterfacePath)
	if interfacePath == "" {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("interface path is required")
	}
	moduleName := strings.TrimSpace(req.ModuleName)
	if moduleName == "" {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("module name is required")
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}

	resolver := s.resolver(filepath.Dir(outputPath), "", req.Context.TrackSystemDeps)
	ok, err := resolver.BuildModuleFromInterface(ctx, req.Context, moduleName, interfacePath, outputPath)
	if err != nil {
		return BuildResult{}, err
	}
	return BuildResult{Success: ok}, nil
}
