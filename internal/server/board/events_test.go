package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{ Validate() error }
		wantErr bool
	}{
		{name: "join ok", req: JoinBoardRequest{BoardID: "B1", Token: "t"}},
		{name: "join without token still validates", req: JoinBoardRequest{BoardID: "B1"}},
		{name: "join missing board", req: JoinBoardRequest{Token: "t"}, wantErr: true},

		{name: "approve ok", req: ApproveUserRequest{BoardID: "B1", UID: "u1"}},
		{name: "approve missing uid", req: ApproveUserRequest{BoardID: "B1"}, wantErr: true},
		{name: "reject missing board", req: RejectUserRequest{UID: "u1"}, wantErr: true},

		{name: "leave ok", req: LeaveBoardRequest{BoardID: "B1"}},
		{name: "leave missing board", req: LeaveBoardRequest{}, wantErr: true},
		{name: "online users missing board", req: OnlineUsersRequest{}, wantErr: true},

		{name: "create ok without id", req: CreateNoteRequest{BoardID: "B1"}},
		{name: "create missing board", req: CreateNoteRequest{ID: "n1"}, wantErr: true},
		{name: "edit missing id", req: EditNoteRequest{BoardID: "B1"}, wantErr: true},
		{name: "move ok", req: MoveNoteRequest{ID: "n1", BoardID: "B1"}},
		{name: "move missing id", req: MoveNoteRequest{BoardID: "B1"}, wantErr: true},
		{name: "delete missing board", req: DeleteNoteRequest{ID: "n1"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
