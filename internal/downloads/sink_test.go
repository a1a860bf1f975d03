package downloads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"student_applications.csv", "student_applications.csv"},
		{"admission-form-Jane-Doe.pdf", "admission-form-Jane-Doe.pdf"},
		{"admission-form-../../etc/passwd.pdf", "admission-form-.._.._etc_passwd.pdf"},
		{"a\\b.pdf", "a_b.pdf"},
		{"", "download"},
		{"..", "download"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFilename(tt.in))
		})
	}
}

func TestLocalSink_Deliver(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewLocalSink(fs, "/srv/downloads")
	sink.newID = func() string { return "0f8c" }

	obj, err := sink.Deliver(context.Background(), "student_applications.csv", ContentTypeCSV, []byte("a,b\n1,2"))
	require.NoError(t, err)

	assert.Equal(t, "student_applications.csv", obj.Filename)
	assert.Equal(t, "/srv/downloads/0f8c/student_applications.csv", obj.Location)
	assert.Equal(t, 7, obj.Size)

	data, err := afero.ReadFile(fs, obj.Location)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2", string(data))

	exists, err := afero.Exists(fs, obj.Location+".part")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalSink_SameFilenameKeepsBothFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewLocalSink(fs, "/srv/downloads")
	ctx := context.Background()

	first, err := sink.Deliver(ctx, "admission-form-Jane-Doe.pdf", ContentTypePDF, []byte("first applicant"))
	require.NoError(t, err)
	second, err := sink.Deliver(ctx, "admission-form-Jane-Doe.pdf", ContentTypePDF, []byte("second applicant"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Location, second.Location)
	assert.Equal(t, first.Filename, second.Filename)

	data, err := afero.ReadFile(fs, first.Location)
	require.NoError(t, err)
	assert.Equal(t, "first applicant", string(data))

	data, err = afero.ReadFile(fs, second.Location)
	require.NoError(t, err)
	assert.Equal(t, "second applicant", string(data))
}

func TestLocalSink_Remove(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewLocalSink(fs, "/srv/downloads")
	ctx := context.Background()

	obj, err := sink.Deliver(ctx, "admission-form-Jane.pdf", ContentTypePDF, []byte("%PDF"))
	require.NoError(t, err)
	require.NoError(t, sink.Remove(ctx, obj))

	exists, err := afero.Exists(fs, obj.Location)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = afero.DirExists(fs, "/srv/downloads")
	require.NoError(t, err)
	assert.True(t, exists, "the sink root stays")

	assert.Error(t, sink.Remove(ctx, obj), "removing twice reports the missing file")
}

func TestLocalSink_ReadOnlyFs(t *testing.T) {
	sink := NewLocalSink(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/srv/downloads")

	_, err := sink.Deliver(context.Background(), "x.pdf", ContentTypePDF, []byte("%PDF"))
	assert.Error(t, err)
}

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.DeleteObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestS3Sink_Remove(t *testing.T) {
	client := new(mockS3)
	sink := NewS3Sink(client, "admissions-downloads", "receipts")

	client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Bucket == "admissions-downloads" && *in.Key == "receipts/0f8c/admission-form-Jane.pdf"
	})).Return(&s3.DeleteObjectOutput{}, nil)

	err := sink.Remove(context.Background(), &Object{Location: "s3://admissions-downloads/receipts/0f8c/admission-form-Jane.pdf"})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestS3Sink_Deliver(t *testing.T) {
	client := new(mockS3)
	sink := NewS3Sink(client, "admissions-downloads", "exports")
	sink.newID = func() string { return "0f8c" }

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return *in.Bucket == "admissions-downloads" &&
			*in.Key == "exports/0f8c/student_applications.csv" &&
			*in.ContentType == ContentTypeCSV &&
			bytes.Equal(body, []byte("h\nr"))
	})).Return(&s3.PutObjectOutput{}, nil)

	obj, err := sink.Deliver(context.Background(), "student_applications.csv", ContentTypeCSV, []byte("h\nr"))
	require.NoError(t, err)
	assert.Equal(t, "s3://admissions-downloads/exports/0f8c/student_applications.csv", obj.Location)
	assert.Equal(t, 3, obj.Size)
	client.AssertExpectations(t)
}

func TestS3Sink_Failure(t *testing.T) {
	client := new(mockS3)
	sink := NewS3Sink(client, "b", "")
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("AccessDenied"))

	_, err := sink.Deliver(context.Background(), "x.pdf", ContentTypePDF, []byte("%PDF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}
