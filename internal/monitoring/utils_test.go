package monitoring

import (
	"testing"
)

func Test_getSegmentName(t *testing.T) {
	type args struct {
		fullFuncName string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "package.Receiver.Method",
			args: args{
				fullFuncName: "github.com/catatduit/go-catatduit/internal/services.(*transaction).DoCreateTransaction",
			},
			want: "services.transaction.DoCreateTransaction",
		},
		{
			name: "package.Receiver.Method without pointer",
			args: args{
				fullFuncName: "github.com/catatduit/go-catatduit/internal/services.transaction.DoCreateTransaction",
			},
			want: "services.transaction.DoCreateTransaction",
		},
		{
			name: "package.Function",
			args: args{
				fullFuncName: "github.com/catatduit/go-catatduit/internal/nlp.NewParser",
			},
			want: "nlp.NewParser",
		},
		{
			name: "main.main",
			args: args{
				fullFuncName: "main.main",
			},
			want: "main.main",
		},
		{
			name: "http.Server.Serve",
			args: args{
				fullFuncName: "net/http.(*Server).Serve",
			},
			want: "http.Server.Serve",
		},
		{
			name: "runtime.goexit",
			args: args{
				fullFuncName: "runtime.goexit",
			},
			want: "runtime.goexit",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getSegmentName(tt.args.fullFuncName); got != tt.want {
				t.Errorf("getSegmentName() = %v, want %v", got, tt.want)
			}
		})
	}
}
