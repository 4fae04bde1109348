package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/llm"
)

// Converse sends a single user message through the Bedrock Converse API
// and returns the text of the first content block. A reply without a
// text block is a broken envelope and fails the whole operation; it is
// never converted into a verdict.
func (c *Client) Converse(ctx context.Context, request llm.Request) (*llm.Response, error) {
	output, err := c.Client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.ModelID),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: request.Prompt},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(request.MaxTokens)),
			Temperature: aws.Float32(float32(request.Temperature)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to invoke model %s: %w", c.ModelID, err)
	}

	message, ok := output.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, fmt.Errorf("unexpected converse output type %T", output.Output)
	}
	if len(message.Value.Content) == 0 {
		return nil, fmt.Errorf("no content blocks in model response")
	}

	text, ok := message.Value.Content[0].(*types.ContentBlockMemberText)
	if !ok {
		return nil, fmt.Errorf("first content block is not text, got %T", message.Value.Content[0])
	}

	return &llm.Response{
		Content:    text.Value,
		StopReason: string(output.StopReason),
	}, nil
}
