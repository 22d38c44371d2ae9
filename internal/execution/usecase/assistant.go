package usecase

import (
	"fmt"
	"strings"

	"workspace-query/internal/execution"
	"workspace-query/internal/model"
)

// action never mutates the workspace; it only describes what would happen.
func (uc *implUseCase) action(input model.ExecuteInput) (model.QueryResponse, error) {
	data := &model.ActionData{RequiresConfirmation: true}
	if p := input.Route.Parameters.Action; p != nil {
		data.RequiresConfirmation = p.RequiresConfirmation
		data.TargetIDs = p.TargetIDs
	}
	if len(data.TargetIDs) == 0 {
		data.Message = execution.MsgActionNoTarget
	} else {
		data.Message = fmt.Sprintf(execution.MsgActionConfirm, len(data.TargetIDs))
	}

	return model.QueryResponse{
		Type:     model.ResponseTypeAction,
		Data:     model.ResponseData{Action: data},
		Metadata: model.ExecutionMetadata{Source: execution.SourceAction},
	}, nil
}

// fallback answers with a clarification request, or with usage help when the route asks for none.
func (uc *implUseCase) fallback(input model.ExecuteInput) (model.QueryResponse, error) {
	msg := execution.MsgClarify
	var suggestions []string
	if p := input.Route.Parameters.Fallback; p != nil {
		if !p.SuggestClarification {
			msg = execution.MsgHelp
		}
		suggestions = p.Suggestions
	}

	var b strings.Builder
	b.WriteString(msg)
	for i, s := range suggestions {
		if i == 0 {
			b.WriteString("\n")
		}
		b.WriteString("\n- ")
		b.WriteString(s)
	}

	return model.QueryResponse{
		Type:     model.ResponseTypeContent,
		Data:     model.ResponseData{Content: &model.ContentData{Text: b.String()}},
		Metadata: model.ExecutionMetadata{Source: execution.SourceAssistant},
	}, nil
}
