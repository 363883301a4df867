package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	storage "github.com/supabase-community/storage-go"
)

const minutesBucket = "meeting-minutes"

// UploadMinutesFile đẩy file biên bản cuộc họp lên bucket storage và trả về
// public URL để lưu vào meeting.
func UploadMinutesFile(fh *multipart.FileHeader, meetingID string) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")

	storageClient := storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	ext := filepath.Ext(fh.Filename)

	// Mỗi cuộc họp một biên bản, upload lại sẽ ghi đè
	objectPath := fmt.Sprintf("%s/minutes%s", meetingID, ext)

	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}

	if _, err := storageClient.UploadFile(minutesBucket, objectPath, f, options); err != nil {
		return "", err
	}

	publicURL := storageClient.GetPublicUrl(minutesBucket, objectPath)
	return publicURL.SignedURL, nil
}
